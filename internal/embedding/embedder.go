// ABOUTME: Embedder interface producing retrieval keys for chunks and queries
// ABOUTME: Implementations cover the external vector service and a local lexical signature
package embedding

import (
	"context"
	"fmt"

	"github.com/harper/bedrock/internal/models"
)

// Embedder converts text into a retrieval key. Document and query keys
// must live in the same key space so retrieval-time scoring is meaningful.
type Embedder interface {
	Name() string
	EmbedDocument(ctx context.Context, text string) (models.RetrievalKey, error)
	EmbedQuery(ctx context.Context, text string) (models.RetrievalKey, error)
}

// ServiceError reports a failure of the external embedding service.
// The affected chunk is dropped; a rebuild never aborts on one chunk.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("embedding service: %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
