// ABOUTME: Benchmark runner: indexes the synthetic corpus and scores scenarios
// ABOUTME: Fully offline and deterministic using the lexical embedder

package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harper/bedrock/internal/config"
	"github.com/harper/bedrock/internal/core"
	"github.com/harper/bedrock/internal/embedding"
	"github.com/harper/bedrock/internal/models"
)

// BenchmarkRunner executes retrieval scenarios against a freshly indexed
// synthetic corpus
type BenchmarkRunner struct {
	pipeline *core.Pipeline
	cfg      *config.Config
	metrics  *MetricsCalculator
	workDir  string
	verbose  bool
}

// NewBenchmarkRunner writes the synthetic corpus to a scratch directory
// and indexes it with the lexical embedder. Results do not depend on any
// external service.
func NewBenchmarkRunner(verbose bool) (*BenchmarkRunner, error) {
	workDir, err := os.MkdirTemp("", "bedrock-benchmark-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	corpusDir := filepath.Join(workDir, "corpus")
	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		return nil, fmt.Errorf("creating corpus directory: %w", err)
	}
	for _, doc := range GetCorpus() {
		if err := os.WriteFile(filepath.Join(corpusDir, doc.Name), []byte(doc.Text), 0644); err != nil {
			return nil, fmt.Errorf("writing corpus document %s: %w", doc.Name, err)
		}
	}

	cfg := &config.Config{
		StorePath:       filepath.Join(workDir, "context_store.json"),
		CorpusDir:       corpusDir,
		ChunkSize:       400,
		ChunkOverlap:    50,
		TopK:            4,
		MaxContextChars: 20000,
		Embedder:        config.EmbedderLexical,
	}

	runner := &BenchmarkRunner{
		pipeline: core.NewPipeline(cfg, embedding.NewLexicalEmbedder()),
		cfg:      cfg,
		metrics:  NewMetricsCalculator(),
		workDir:  workDir,
		verbose:  verbose,
	}

	report, err := runner.pipeline.Rebuild(context.Background())
	if err != nil {
		return nil, fmt.Errorf("indexing benchmark corpus: %w", err)
	}
	if verbose {
		log.Printf("Indexed %d chunks from %d corpus documents", report.Chunks, report.Sources)
	}

	return runner, nil
}

// Close removes the scratch directory
func (r *BenchmarkRunner) Close() {
	if r.workDir != "" {
		os.RemoveAll(r.workDir)
	}
}

// RunTest executes one scenario and scores its retrieval
func (r *BenchmarkRunner) RunTest(scenario TestScenario) (TestResult, error) {
	r.cfg.TopK = scenario.TopK

	grounding, err := r.pipeline.RetrieveContext(context.Background(), scenario.Query, models.BackendCorpus{})
	if err != nil {
		return TestResult{}, fmt.Errorf("retrieval for scenario %s: %w", scenario.ID, err)
	}

	if r.verbose {
		for _, res := range grounding.Results {
			log.Printf("[%s] rank %d score %.3f source %s", scenario.ID, res.Rank, res.Score, res.Chunk.Source)
		}
	}

	return r.metrics.EvaluateTest(scenario, grounding), nil
}

// RunAllTests executes every scenario
func (r *BenchmarkRunner) RunAllTests() ([]TestResult, error) {
	scenarios := GetAllScenarios()
	results := make([]TestResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := r.RunTest(scenario)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// ExportResults writes results as indented JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, path string) error {
	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
