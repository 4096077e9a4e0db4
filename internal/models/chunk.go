// ABOUTME: Chunk and RetrievalKey models, the atomic unit of retrieval
// ABOUTME: A chunk carries its text plus the key it is scored with
package models

// RetrievalKey is the signature a chunk is scored against a query with.
// Exactly one of Vector or Terms is populated, depending on whether the
// index was built with the embedding service or the local lexical embedder.
type RetrievalKey struct {
	// Vector is a dense embedding from the external embedding service.
	Vector []float64 `json:"vector,omitempty"`

	// Terms is a normalized term-weight signature computed locally.
	Terms map[string]float64 `json:"terms,omitempty"`
}

// IsZero reports whether the key carries no usable signal.
func (k RetrievalKey) IsZero() bool {
	return len(k.Vector) == 0 && len(k.Terms) == 0
}

// Chunk is a bounded span of text extracted from a document.
// Chunks from the same document keep their original order via Index.
type Chunk struct {
	ChunkID string `json:"chunk_id"`

	// Source is the owning document's identifier.
	Source string `json:"source"`

	// Index is the chunk's sequence position within its document.
	Index int `json:"index"`

	Text string `json:"text"`

	// Overlap is the number of leading runes shared with the previous
	// chunk of the same document, zero when chunks do not overlap.
	Overlap int `json:"overlap,omitempty"`

	Key RetrievalKey `json:"key"`
}

// RetrievalResult is a chunk scored against a query, ranked from 1.
type RetrievalResult struct {
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
	Chunk Chunk   `json:"chunk"`
}
