// ABOUTME: Tests for atomic snapshot persistence
// ABOUTME: Covers round trips, missing files, corrupt files, and replacement
package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/bedrock/internal/models"
)

func testSnapshot(chunks ...models.Chunk) *models.Snapshot {
	return &models.Snapshot{
		Version:  models.SnapshotVersion,
		BuiltAt:  time.Now().UTC(),
		Embedder: "lexical",
		Chunks:   chunks,
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "context_store.json")
	s := New(path)

	saved := testSnapshot(
		models.Chunk{ChunkID: "a.txt:0", Source: "a.txt", Index: 0, Text: "hello", Key: models.RetrievalKey{Terms: map[string]float64{"hello": 1}}},
		models.Chunk{ChunkID: "a.txt:1", Source: "a.txt", Index: 1, Text: "world", Key: models.RetrievalKey{Vector: []float64{0.5, 0.5}}},
	)
	if err := s.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := s.Load()
	if len(loaded.Chunks) != 2 {
		t.Fatalf("loaded %d chunks, want 2", len(loaded.Chunks))
	}
	if loaded.Embedder != "lexical" {
		t.Errorf("Embedder = %q, want lexical", loaded.Embedder)
	}
	if loaded.Chunks[0].Text != "hello" || loaded.Chunks[1].Text != "world" {
		t.Error("chunk texts did not survive the round trip")
	}
	if loaded.Chunks[0].Key.Terms["hello"] != 1 {
		t.Error("lexical key did not survive the round trip")
	}
	if len(loaded.Chunks[1].Key.Vector) != 2 {
		t.Error("vector key did not survive the round trip")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nowhere.json"))

	snap := s.Load()
	if !snap.Empty() {
		t.Error("missing store file must load as empty snapshot")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	snap := New(path).Load()
	if !snap.Empty() {
		t.Error("corrupt store file must load as empty snapshot, not fail")
	}
}

func TestSave_ReplacesWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := New(path)

	if err := s.Save(testSnapshot(models.Chunk{ChunkID: "old:0", Source: "old", Text: "stale"})); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(testSnapshot(models.Chunk{ChunkID: "new:0", Source: "new", Text: "fresh"})); err != nil {
		t.Fatal(err)
	}

	loaded := s.Load()
	if len(loaded.Chunks) != 1 || loaded.Chunks[0].Source != "new" {
		t.Errorf("second save must replace the snapshot whole, got %+v", loaded.Chunks)
	}
}

func TestSave_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "store.json"))

	if err := s.Save(testSnapshot()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "store.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only store.json", names)
	}
}

func TestSnapshot_Sources(t *testing.T) {
	snap := testSnapshot(
		models.Chunk{Source: "a.txt"},
		models.Chunk{Source: "a.txt"},
		models.Chunk{Source: "b.md"},
	)

	sources := snap.Sources()
	if len(sources) != 2 || sources[0] != "a.txt" || sources[1] != "b.md" {
		t.Errorf("Sources() = %v, want [a.txt b.md]", sources)
	}
}
