// ABOUTME: Retriever scores chunks against a query key and returns the top-K
// ABOUTME: Cosine for dense vectors, sparse cosine for lexical signatures
package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/harper/bedrock/internal/models"
)

// Retrieve scores every chunk against the query key and returns the topK
// highest-scoring chunks in descending score order. Ties keep the chunks'
// store order (document order, then chunk index). An empty chunk set
// yields an empty result: "no grounding available" is not an error.
func Retrieve(query models.RetrievalKey, chunks []models.Chunk, topK int) ([]models.RetrievalResult, error) {
	if topK < 1 {
		return nil, fmt.Errorf("top-k must be >= 1, got %d", topK)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	results := make([]models.RetrievalResult, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, models.RetrievalResult{
			Score: ScoreKey(query, c.Key),
			Chunk: c,
		})
	}

	// Stable sort keeps store order for equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK < len(results) {
		results = results[:topK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// ScoreKey computes similarity between a query key and a chunk key.
// Keys from different spaces (vector vs lexical) score zero.
func ScoreKey(query, key models.RetrievalKey) float64 {
	switch {
	case len(query.Vector) > 0 && len(key.Vector) > 0:
		return cosineSimilarity(query.Vector, key.Vector)
	case len(query.Terms) > 0 && len(key.Terms) > 0:
		return sparseCosine(query.Terms, key.Terms)
	default:
		return 0.0
	}
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sparseCosine is the dot product of two term-weight signatures. The
// lexical embedder L2-normalizes signatures, so the dot product is the
// cosine similarity.
func sparseCosine(a, b map[string]float64) float64 {
	// Iterate the smaller map
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}
