// ABOUTME: Pipeline orchestrates corpus rebuilds and request-time grounding
// ABOUTME: Rebuilds swap in a complete snapshot; readers never see partial state
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harper/bedrock/internal/config"
	"github.com/harper/bedrock/internal/embedding"
	"github.com/harper/bedrock/internal/loader"
	"github.com/harper/bedrock/internal/models"
	"github.com/harper/bedrock/internal/store"
)

// Pipeline wires the loader, chunk engine, embedder, and snapshot store
// into the two operations the system serves: full corpus rebuilds and
// per-request grounding retrieval.
type Pipeline struct {
	cfg      *config.Config
	loader   *loader.Loader
	engine   *ChunkEngine
	embedder embedding.Embedder
	store    *store.SnapshotStore

	// current is the serving snapshot. Rebuilds publish a complete new
	// snapshot here; readers load whatever is current and keep using it
	// for the whole request.
	current atomic.Pointer[models.Snapshot]

	// rebuildMu is the single-flight guard: at most one rebuild runs at
	// a time, and queries never wait on one.
	rebuildMu sync.Mutex

	// refreshPending forces a rebuild on the next qualifying request.
	refreshPending atomic.Bool
}

// NewPipeline builds a pipeline from configuration and the chosen
// embedder, loading the persisted snapshot as the initial serving state.
func NewPipeline(cfg *config.Config, embedder embedding.Embedder, opts ...loader.Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		loader:   loader.New(cfg.MaxContextChars, opts...),
		engine:   NewChunkEngine(cfg.ChunkSize, cfg.ChunkOverlap),
		embedder: embedder,
		store:    store.New(cfg.StorePath),
	}
	p.current.Store(p.store.Load())
	p.refreshPending.Store(cfg.RefreshOnStart)
	return p
}

// Snapshot returns the current serving snapshot.
func (p *Pipeline) Snapshot() *models.Snapshot {
	return p.current.Load()
}

// LoadFile extracts normalized text from a file of any supported format.
// Callers use it to turn an uploaded file into ad-hoc grounding material.
func (p *Pipeline) LoadFile(ctx context.Context, path string) (*models.Document, error) {
	return p.loader.Load(ctx, path)
}

// BuildReport summarizes a rebuild for callers and logs.
type BuildReport struct {
	Sources       int      `json:"sources"`
	Chunks        int      `json:"chunks"`
	SkippedDocs   []string `json:"skipped_docs,omitempty"`
	DroppedChunks int      `json:"dropped_chunks,omitempty"`
}

// Rebuild discards the previous store and reindexes every supported
// document in the corpus directory. Per-document extraction failures and
// per-chunk embedding failures are isolated: the bad item is skipped or
// dropped and the rebuild continues. The new snapshot replaces the old
// one only after it is complete and persisted.
func (p *Pipeline) Rebuild(ctx context.Context) (*BuildReport, error) {
	p.rebuildMu.Lock()
	defer p.rebuildMu.Unlock()
	return p.rebuildLocked(ctx)
}

func (p *Pipeline) rebuildLocked(ctx context.Context) (*BuildReport, error) {
	report := &BuildReport{}
	snap := &models.Snapshot{
		Version:  models.SnapshotVersion,
		BuiltAt:  time.Now().UTC(),
		Embedder: p.embedder.Name(),
	}

	entries, err := os.ReadDir(p.cfg.CorpusDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	// os.ReadDir sorts by name, so chunk order is stable across rebuilds
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := models.FormatForPath(name); !ok {
			continue
		}

		doc, err := p.loader.Load(ctx, filepath.Join(p.cfg.CorpusDir, name))
		if err != nil {
			log.Printf("Warning: skipping %s: %v", name, err)
			report.SkippedDocs = append(report.SkippedDocs, name)
			continue
		}
		if doc.Text == "" {
			continue
		}
		report.Sources++

		for _, chunk := range p.engine.ChunkDocument(doc) {
			key, err := p.embedder.EmbedDocument(ctx, chunk.Text)
			if err != nil {
				log.Printf("Warning: dropping chunk %s: %v", chunk.ChunkID, err)
				report.DroppedChunks++
				continue
			}
			chunk.Key = key
			snap.Chunks = append(snap.Chunks, chunk)
		}
	}
	report.Chunks = len(snap.Chunks)

	if err := p.store.Save(snap); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}
	p.current.Store(snap)
	p.refreshPending.Store(false)
	return report, nil
}

// IngestText chunks and indexes caller-supplied text into the persisted
// store, appending to the current snapshot. Unlike ad-hoc grounding this
// material survives the request; unlike a rebuild it does not touch
// existing chunks.
func (p *Pipeline) IngestText(ctx context.Context, source, text string) (*BuildReport, error) {
	doc, err := p.loader.LoadBytes(ctx, source, models.FormatText, []byte(text))
	if err != nil {
		return nil, err
	}
	if doc.Text == "" {
		return nil, errors.New("no text provided for ingestion")
	}

	p.rebuildMu.Lock()
	defer p.rebuildMu.Unlock()

	old := p.current.Load()
	snap := &models.Snapshot{
		Version:  models.SnapshotVersion,
		BuiltAt:  time.Now().UTC(),
		Embedder: p.embedder.Name(),
		Chunks:   append([]models.Chunk(nil), old.Chunks...),
	}

	report := &BuildReport{Sources: 1}
	for _, chunk := range p.engine.ChunkDocument(doc) {
		key, err := p.embedder.EmbedDocument(ctx, chunk.Text)
		if err != nil {
			log.Printf("Warning: dropping chunk %s: %v", chunk.ChunkID, err)
			report.DroppedChunks++
			continue
		}
		chunk.Key = key
		snap.Chunks = append(snap.Chunks, chunk)
	}
	if len(snap.Chunks) == len(old.Chunks) {
		return nil, errors.New("no chunks could be indexed from the provided text")
	}
	report.Chunks = len(snap.Chunks) - len(old.Chunks)

	if err := p.store.Save(snap); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}
	p.current.Store(snap)
	return report, nil
}

// RetrieveContext resolves the grounding source, retrieves the top-K
// relevant chunks for the query, and assembles the bounded context blob.
// An empty result means "no grounding available"; callers fall back to
// ungrounded generation rather than failing.
func (p *Pipeline) RetrieveContext(ctx context.Context, query string, source models.GroundingSource) (*models.GroundingContext, error) {
	chunks, err := p.resolveChunks(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &models.GroundingContext{}, nil
	}

	queryKey, err := p.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := Retrieve(queryKey, chunks, p.cfg.TopK)
	if err != nil {
		return nil, err
	}

	return &models.GroundingContext{
		Joined:  Assemble(results, p.cfg.MaxContextChars),
		Results: results,
	}, nil
}

// resolveChunks picks the request's chunk set from the grounding source.
// Exactly one source is active; corpus and ad-hoc chunks are never mixed.
func (p *Pipeline) resolveChunks(ctx context.Context, source models.GroundingSource) ([]models.Chunk, error) {
	switch src := source.(type) {
	case models.AdHocContext:
		return p.adhocChunks(ctx, src)
	case models.BackendCorpus, nil:
		return p.corpusChunks(ctx), nil
	default:
		return nil, fmt.Errorf("unknown grounding source %T", source)
	}
}

// corpusChunks serves from the current snapshot, rebuilding first when a
// refresh is pending or the store is empty. If a rebuild is already
// running, the request proceeds on the last-known-good snapshot instead
// of waiting.
func (p *Pipeline) corpusChunks(ctx context.Context) []models.Chunk {
	if p.refreshPending.Load() || p.current.Load().Empty() {
		if p.rebuildMu.TryLock() {
			if _, err := p.rebuildLocked(ctx); err != nil {
				log.Printf("Warning: corpus rebuild failed: %v", err)
			}
			p.rebuildMu.Unlock()
		}
	}

	snap := p.current.Load()
	if snap.Embedder != "" && snap.Embedder != p.embedder.Name() {
		log.Printf("Warning: store built with embedder %q but serving with %q; rebuild recommended", snap.Embedder, p.embedder.Name())
	}
	return snap.Chunks
}

// adhocChunks chunks and keys request-scoped material. Nothing here is
// ever written to the persisted store. Chunks whose embedding fails are
// dropped, mirroring rebuild behavior.
func (p *Pipeline) adhocChunks(ctx context.Context, src models.AdHocContext) ([]models.Chunk, error) {
	name := src.Name
	if name == "" {
		name = "ad-hoc"
	}

	doc, err := p.loader.LoadBytes(ctx, name, models.FormatText, []byte(src.Text))
	if err != nil {
		return nil, err
	}

	var chunks []models.Chunk
	for _, chunk := range p.engine.ChunkDocument(doc) {
		key, err := p.embedder.EmbedDocument(ctx, chunk.Text)
		if err != nil {
			log.Printf("Warning: dropping ad-hoc chunk %s: %v", chunk.ChunkID, err)
			continue
		}
		chunk.Key = key
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}
