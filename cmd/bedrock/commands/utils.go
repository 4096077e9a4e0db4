// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Pipeline construction, string truncation, flag validation
package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/harper/bedrock/internal/checkpoint"
	"github.com/harper/bedrock/internal/config"
	"github.com/harper/bedrock/internal/core"
	"github.com/harper/bedrock/internal/embedding"
	"github.com/harper/bedrock/internal/llm"
)

// buildPipeline loads configuration and constructs the pipeline with the
// configured embedder. Falls back to the local lexical embedder when the
// OpenAI embedder is selected but no API key is available.
func buildPipeline() (*core.Pipeline, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	emb, err := buildEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	return core.NewPipeline(cfg, emb), cfg, nil
}

func buildEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	if cfg.Embedder == config.EmbedderOpenAI {
		if cfg.OpenAIKey == "" {
			log.Println("Warning: OPENAI_API_KEY not set - falling back to local lexical embedder")
			return embedding.NewLexicalEmbedder(), nil
		}
		client, err := llm.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		return embedding.NewOpenAIEmbedder(client), nil
	}
	return embedding.NewLexicalEmbedder(), nil
}

// buildGenerator constructs the checkpoint generator, or nil when chat
// credentials are absent.
func buildGenerator(cfg *config.Config) (*checkpoint.Generator, error) {
	if cfg.OpenAIKey == "" {
		return nil, nil
	}
	client, err := llm.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}
	return checkpoint.NewGenerator(client), nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
