// ABOUTME: MCP tool definitions and registration for the bedrock server
// ABOUTME: Defines JSON schemas for the 5 context/generation tools
package mcp

import (
	"github.com/harper/bedrock/internal/checkpoint"
	"github.com/harper/bedrock/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server. The generator
// may be nil when no chat credentials are configured; the
// generate_checkpoints tool then reports an error instead of failing at
// startup.
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, generator *checkpoint.Generator) *Handlers {
	handlers := &Handlers{
		pipeline:  pipeline,
		generator: generator,
	}

	// 1. rebuild_context - Reindex the corpus directory from scratch
	server.AddTool(mcp.Tool{
		Name:        "rebuild_context",
		Description: "Rebuild the context store by reindexing every supported document in the corpus directory. Replaces the previous store.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RebuildContext)

	// 2. search_context - Retrieve the top-ranked chunks for a query
	server.AddTool(mcp.Tool{
		Name:        "search_context",
		Description: "Retrieve the most relevant context chunks for a query. Searches the indexed corpus unless ad-hoc context text is supplied, in which case only that text is searched.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"context_text": map[string]interface{}{
					"type":        "string",
					"description": "Optional ad-hoc text to search instead of the corpus; never persisted",
				},
				"context_name": map[string]interface{}{
					"type":        "string",
					"description": "Optional label for the ad-hoc text",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchContext)

	// 3. ingest_context - Append caller text to the persistent store
	server.AddTool(mcp.Tool{
		Name:        "ingest_context",
		Description: "Chunk, embed, and append the given text to the persistent context store. Unlike ad-hoc search context, ingested text survives restarts.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to index",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Optional source label; a unique handle is generated when omitted",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.IngestContext)

	// 4. generate_checkpoints - Produce grounded learning checkpoints
	server.AddTool(mcp.Tool{
		Name:        "generate_checkpoints",
		Description: "Generate a list of learning checkpoints for a problem statement, grounded on retrieved context from the corpus or supplied ad-hoc text.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"problem": map[string]interface{}{
					"type":        "string",
					"description": "Problem statement to generate checkpoints for",
				},
				"use_context": map[string]interface{}{
					"type":        "boolean",
					"description": "Ground generation on retrieved context (default: true)",
					"default":     true,
				},
				"context_text": map[string]interface{}{
					"type":        "string",
					"description": "Optional ad-hoc text to ground on instead of the corpus",
				},
			},
			Required: []string{"problem"},
		},
	}, handlers.GenerateCheckpoints)

	// 5. list_sources - Inspect the current store
	server.AddTool(mcp.Tool{
		Name:        "list_sources",
		Description: "List the sources currently indexed in the context store with store metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListSources)

	return handlers
}
