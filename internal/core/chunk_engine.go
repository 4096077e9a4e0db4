// ABOUTME: ChunkEngine splits normalized text into retrieval-sized chunks
// ABOUTME: Prefers sentence and paragraph boundaries, falls back to fixed windows
package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/harper/bedrock/internal/models"
)

// DefaultChunkSize is the default number of runes per chunk.
const DefaultChunkSize = 1200

// DefaultChunkOverlap is the default overlap for fixed-window fallback cuts.
const DefaultChunkOverlap = 150

// ChunkEngine handles boundary-aware text chunking. Splitting is a pure
// function of the text and the engine's configuration: the same input
// always yields the same chunks.
type ChunkEngine struct {
	maxSize int
	overlap int
}

// NewChunkEngine creates a ChunkEngine. Non-positive maxSize falls back to
// the default; overlap is clamped below maxSize.
func NewChunkEngine(maxSize, overlap int) *ChunkEngine {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= maxSize {
		overlap = maxSize / 4
	}
	return &ChunkEngine{maxSize: maxSize, overlap: overlap}
}

// piece is one split segment plus how many leading runes it shares with
// the previous segment.
type piece struct {
	text    string
	overlap int
}

// Split returns the chunk texts for the given text, each at most maxSize
// runes, trimmed of surrounding whitespace.
func (ce *ChunkEngine) Split(text string) []string {
	pieces := ce.split(text)
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.text
	}
	return out
}

// ChunkDocument splits a document and tags each chunk with its source and
// sequence index. Chunk IDs are deterministic so that rebuilding an
// unchanged corpus produces an equivalent store.
func (ce *ChunkEngine) ChunkDocument(doc *models.Document) []models.Chunk {
	pieces := ce.split(doc.Text)
	chunks := make([]models.Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, models.Chunk{
			ChunkID: fmt.Sprintf("%s:%d", doc.Source, i),
			Source:  doc.Source,
			Index:   i,
			Text:    p.text,
			Overlap: p.overlap,
		})
	}
	return chunks
}

func (ce *ChunkEngine) split(text string) []piece {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil
	}

	runes := []rune(cleaned)
	boundaries := findBoundaries(runes)

	var pieces []piece
	start := 0
	carried := 0 // runes the next piece shares with the previous one
	for start < len(runes) {
		// Skip separator whitespace, but never inside a carried overlap
		if carried == 0 {
			for start < len(runes) && unicode.IsSpace(runes[start]) {
				start++
			}
		}
		if start >= len(runes) {
			break
		}

		end := start + ce.maxSize
		if end >= len(runes) {
			if text := trimPiece(string(runes[start:]), carried); text != "" {
				pieces = append(pieces, piece{text: text, overlap: carried})
			}
			break
		}

		// Furthest boundary that keeps the chunk within maxSize
		cut := -1
		for _, b := range boundaries {
			if b > end {
				break
			}
			if b > start {
				cut = b
			}
		}

		if cut > 0 {
			if text := trimPiece(string(runes[start:cut]), carried); text != "" {
				pieces = append(pieces, piece{text: text, overlap: carried})
			}
			start = cut
			carried = 0
			continue
		}

		// No boundary in reach: fixed window, stepping back by the
		// configured overlap so the cut does not lose cross-boundary context
		pieces = append(pieces, piece{text: string(runes[start:end]), overlap: carried})
		next := end - ce.overlap
		if next <= start {
			next = end
			carried = 0
		} else {
			carried = end - next
		}
		start = next
	}

	return pieces
}

// trimPiece trims piece whitespace. A piece carrying an overlap keeps its
// leading runes intact so the overlap count stays exact.
func trimPiece(s string, carried int) string {
	if carried > 0 {
		return strings.TrimRightFunc(s, unicode.IsSpace)
	}
	return strings.TrimSpace(s)
}

// findBoundaries returns sorted cut positions: after sentence-ending
// punctuation followed by whitespace, after newlines, and at paragraph
// breaks. Positions are exclusive chunk ends.
func findBoundaries(runes []rune) []int {
	var out []int
	for i, r := range runes {
		switch {
		case r == '\n':
			out = append(out, i+1)
		case (r == '.' || r == '!' || r == '?') && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])):
			out = append(out, i+1)
		}
	}
	return out
}
