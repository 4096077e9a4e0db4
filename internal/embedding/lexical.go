// ABOUTME: Local lexical embedder producing term-weight signature keys
// ABOUTME: No external dependency; log-scaled TF, L2-normalized
package embedding

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/harper/bedrock/internal/models"
)

// tokenPattern matches unicode word tokens, keeping in-word apostrophes.
var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// LexicalEmbedder computes term-weight signatures locally. It needs no
// corpus preparation and no network, so it is the offline fallback for
// the OpenAI embedder. Signatures of documents and queries are compared
// with sparse cosine similarity at retrieval time.
type LexicalEmbedder struct{}

// NewLexicalEmbedder creates a lexical embedder.
func NewLexicalEmbedder() *LexicalEmbedder {
	return &LexicalEmbedder{}
}

// Name returns the embedder identifier stored in snapshots.
func (e *LexicalEmbedder) Name() string { return "lexical" }

// EmbedDocument computes the signature for chunk text.
func (e *LexicalEmbedder) EmbedDocument(_ context.Context, text string) (models.RetrievalKey, error) {
	return models.RetrievalKey{Terms: Signature(text)}, nil
}

// EmbedQuery computes the signature for a query, in the same key space.
func (e *LexicalEmbedder) EmbedQuery(_ context.Context, text string) (models.RetrievalKey, error) {
	return models.RetrievalKey{Terms: Signature(text)}, nil
}

// Signature tokenizes text and returns an L2-normalized map of term to
// log-scaled frequency weight. Empty or tokenless text yields nil.
func Signature(text string) map[string]float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	weights := make(map[string]float64, len(counts))
	var norm float64
	for term, count := range counts {
		w := 1 + math.Log(float64(count))
		weights[term] = w
		norm += w * w
	}

	norm = math.Sqrt(norm)
	for term := range weights {
		weights[term] /= norm
	}
	return weights
}
