// ABOUTME: MCP tool handler implementations for the bedrock server
// ABOUTME: Thin adapters from tool arguments to pipeline and generator calls
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/bedrock/internal/checkpoint"
	"github.com/harper/bedrock/internal/core"
	"github.com/harper/bedrock/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline  *core.Pipeline
	generator *checkpoint.Generator // nil when chat credentials are absent
}

// RebuildContext handles the rebuild_context tool
func (h *Handlers) RebuildContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.pipeline.Rebuild(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rebuild failed: %v", err)), nil
	}
	return marshalResult(map[string]interface{}{
		"sources":        report.Sources,
		"chunks":         report.Chunks,
		"skipped_docs":   report.SkippedDocs,
		"dropped_chunks": report.DroppedChunks,
	})
}

// SearchContext handles the search_context tool
func (h *Handlers) SearchContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	grounding, err := h.pipeline.RetrieveContext(ctx, query, groundingSource(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]map[string]interface{}, 0, len(grounding.Results))
	for _, r := range grounding.Results {
		results = append(results, map[string]interface{}{
			"rank":     r.Rank,
			"score":    r.Score,
			"chunk_id": r.Chunk.ChunkID,
			"source":   r.Chunk.Source,
			"text":     r.Chunk.Text,
		})
	}
	return marshalResult(map[string]interface{}{
		"results": results,
		"joined":  grounding.Joined,
	})
}

// IngestContext handles the ingest_context tool
func (h *Handlers) IngestContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	name := request.GetString("name", "")
	if name == "" {
		name = fmt.Sprintf("ingest_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	}

	report, err := h.pipeline.IngestText(ctx, name, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}
	return marshalResult(map[string]interface{}{
		"source":         name,
		"chunks":         report.Chunks,
		"dropped_chunks": report.DroppedChunks,
	})
}

// GenerateCheckpoints handles the generate_checkpoints tool
func (h *Handlers) GenerateCheckpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.generator == nil {
		return mcp.NewToolResultError("checkpoint generation requires OPENAI_API_KEY to be configured"), nil
	}

	problem, err := request.RequireString("problem")
	if err != nil {
		return mcp.NewToolResultError("problem argument is required and must be a string"), nil
	}

	var grounding *models.GroundingContext
	if request.GetBool("use_context", true) {
		grounding, err = h.pipeline.RetrieveContext(ctx, problem, groundingSource(request))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("context retrieval failed: %v", err)), nil
		}
	}

	checkpoints, err := h.generator.Generate(ctx, problem, grounding)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	sources := []string{}
	if grounding != nil {
		for _, r := range grounding.Results {
			sources = append(sources, r.Chunk.ChunkID)
		}
	}
	return marshalResult(map[string]interface{}{
		"checkpoints":       checkpoints,
		"grounding_sources": sources,
	})
}

// ListSources handles the list_sources tool
func (h *Handlers) ListSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := h.pipeline.Snapshot()
	response := map[string]interface{}{
		"sources":  snap.Sources(),
		"chunks":   len(snap.Chunks),
		"embedder": snap.Embedder,
	}
	if !snap.Empty() {
		response["built_at"] = snap.BuiltAt.Format(time.RFC3339)
	}
	return marshalResult(response)
}

// groundingSource resolves the request's grounding: supplied ad-hoc text
// wins, otherwise the indexed corpus is searched.
func groundingSource(request mcp.CallToolRequest) models.GroundingSource {
	text := request.GetString("context_text", "")
	if text == "" {
		return models.BackendCorpus{}
	}
	return models.AdHocContext{
		Name: request.GetString("context_name", ""),
		Text: text,
	}
}

func marshalResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
