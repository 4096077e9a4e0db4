// ABOUTME: Centralized configuration for the Bedrock grounding core
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Embedder selection values for BEDROCK_EMBEDDER.
const (
	EmbedderOpenAI  = "openai"
	EmbedderLexical = "lexical"
)

// Config holds all configuration for the grounding core.
type Config struct {
	// Corpus and store paths
	StorePath string
	CorpusDir string

	// RefreshOnStart forces a full rebuild on the next qualifying request.
	RefreshOnStart bool

	// Retrieval settings
	ChunkSize       int
	ChunkOverlap    int
	TopK            int
	MaxContextChars int

	// Embedder selects the retrieval key space: "openai" or "lexical".
	Embedder string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		StorePath:       getEnv("CONTEXT_STORE_PATH", "data/context_store.json"),
		CorpusDir:       getEnv("CONTEXT_SOURCE_DIR", "data/context_sources"),
		RefreshOnStart:  getEnvBool("REFRESH_CONTEXT_ON_START", false),
		ChunkSize:       getEnvInt("BEDROCK_CHUNK_SIZE", 1200),
		ChunkOverlap:    getEnvInt("BEDROCK_CHUNK_OVERLAP", 150),
		TopK:            getEnvInt("BEDROCK_TOP_K", 4),
		MaxContextChars: getEnvInt("BEDROCK_MAX_CONTEXT_CHARS", 20000),
		Embedder:        getEnv("BEDROCK_EMBEDDER", EmbedderOpenAI),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("BEDROCK_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("BEDROCK_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("BEDROCK_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("BEDROCK_CHUNK_OVERLAP must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	if c.TopK < 1 {
		return fmt.Errorf("BEDROCK_TOP_K must be >= 1, got %d", c.TopK)
	}
	if c.MaxContextChars <= 0 {
		return fmt.Errorf("BEDROCK_MAX_CONTEXT_CHARS must be positive, got %d", c.MaxContextChars)
	}
	if c.Embedder != EmbedderOpenAI && c.Embedder != EmbedderLexical {
		return fmt.Errorf("BEDROCK_EMBEDDER must be %q or %q, got %q", EmbedderOpenAI, EmbedderLexical, c.Embedder)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
