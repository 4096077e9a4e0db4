// ABOUTME: OpenAI-backed embedder producing dense vector retrieval keys
// ABOUTME: Wraps the shared llm client; failures surface as ServiceError
package embedding

import (
	"context"

	"github.com/harper/bedrock/internal/models"
)

// VectorClient is the part of the llm client the embedder needs.
type VectorClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// OpenAIEmbedder produces dense vectors via the external embedding service.
type OpenAIEmbedder struct {
	client VectorClient
}

// NewOpenAIEmbedder creates an embedder on top of the given client.
func NewOpenAIEmbedder(client VectorClient) *OpenAIEmbedder {
	return &OpenAIEmbedder{client: client}
}

// Name returns the embedder identifier stored in snapshots.
func (e *OpenAIEmbedder) Name() string { return "openai" }

// EmbedDocument embeds chunk text at index time.
func (e *OpenAIEmbedder) EmbedDocument(ctx context.Context, text string) (models.RetrievalKey, error) {
	return e.embed(ctx, "document", text)
}

// EmbedQuery embeds the query at retrieval time, in the same key space.
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) (models.RetrievalKey, error) {
	return e.embed(ctx, "query", text)
}

func (e *OpenAIEmbedder) embed(ctx context.Context, op, text string) (models.RetrievalKey, error) {
	vector, err := e.client.GenerateEmbedding(ctx, text)
	if err != nil {
		return models.RetrievalKey{}, &ServiceError{Op: op, Err: err}
	}
	return models.RetrievalKey{Vector: vector}, nil
}
