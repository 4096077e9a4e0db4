// ABOUTME: Assembler merges ranked chunks into one budget-bounded context blob
// ABOUTME: Truncation happens only at chunk boundaries, never mid-chunk
package core

import (
	"fmt"
	"strings"

	"github.com/harper/bedrock/internal/models"
)

// blockSeparator joins chunk blocks in the assembled context.
const blockSeparator = "\n\n"

// Assemble concatenates retrieved chunks, in ranked order, into the
// grounding blob for the generation prompt. Chunks are labeled with their
// rank and source. Assembly stops before the first chunk that would push
// the blob past the rune budget; partial chunks are never emitted.
//
// Ranked order (not original document order) is used throughout so the
// most relevant material survives a tight budget.
func Assemble(results []models.RetrievalResult, budget int) string {
	var sb strings.Builder
	size := 0

	for _, r := range results {
		block := fmt.Sprintf("[Chunk %d | %s] %s", r.Rank, r.Chunk.Source, r.Chunk.Text)
		cost := len([]rune(block))
		if size > 0 {
			cost += len(blockSeparator)
		}
		if budget > 0 && size+cost > budget {
			break
		}

		if size > 0 {
			sb.WriteString(blockSeparator)
		}
		sb.WriteString(block)
		size += cost
	}

	return sb.String()
}
