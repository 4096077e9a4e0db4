// ABOUTME: Main entry point for the Bedrock MCP server with stdio transport
// ABOUTME: Initializes the pipeline, generator, and MCP server with all tools
package main

import (
	"log"
	"os"

	"github.com/harper/bedrock/internal/checkpoint"
	"github.com/harper/bedrock/internal/config"
	"github.com/harper/bedrock/internal/core"
	"github.com/harper/bedrock/internal/embedding"
	"github.com/harper/bedrock/internal/llm"
	"github.com/harper/bedrock/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - using the local lexical embedder; checkpoint generation is disabled")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Pick the embedder; fall back to lexical when OpenAI is unavailable
	var embedder embedding.Embedder = embedding.NewLexicalEmbedder()
	var generator *checkpoint.Generator
	if cfg.OpenAIKey != "" {
		client, err := llm.New(cfg)
		if err != nil {
			log.Printf("Warning: failed to initialize OpenAI client: %v", err)
		} else {
			if cfg.Embedder == config.EmbedderOpenAI {
				embedder = embedding.NewOpenAIEmbedder(client)
			}
			generator = checkpoint.NewGenerator(client)
		}
	}

	pipeline := core.NewPipeline(cfg, embedder)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Bedrock Context Store",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, pipeline, generator)

	// Start server with stdio transport
	log.Println("Bedrock MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
