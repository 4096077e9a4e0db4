// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the context store via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/bedrock/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Bedrock as an MCP (Model Context Protocol) server, exposing
context rebuild, search, ingestion, and checkpoint generation tools
over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  bedrock mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "bedrock": {
  #       "command": "bedrock",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - using the local lexical embedder; checkpoint generation is disabled")
	}

	pipeline, cfg, err := buildPipeline()
	if err != nil {
		return err
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		log.Printf("Warning: checkpoint generation unavailable: %v", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Bedrock Context Store",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, pipeline, generator)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Bedrock MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
