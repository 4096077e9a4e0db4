// ABOUTME: Notebook (.ipynb) extraction by concatenating cell sources
// ABOUTME: Code and markdown cells are kept in their original cell order
package loader

import (
	"encoding/json"
	"fmt"
	"strings"
)

// notebookFile mirrors the parts of the ipynb JSON structure we read.
type notebookFile struct {
	Cells []notebookCell `json:"cells"`
}

type notebookCell struct {
	// Source is either a string or an array of line strings in the wild;
	// json.RawMessage defers that choice to extraction time.
	Source json.RawMessage `json:"source"`
}

// extractNotebook concatenates every cell's source text, in cell order,
// separated by newlines.
func extractNotebook(data []byte) (string, error) {
	var nb notebookFile
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", fmt.Errorf("parsing notebook JSON: %w", err)
	}

	parts := make([]string, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		if len(cell.Source) == 0 {
			continue
		}

		var lines []string
		if err := json.Unmarshal(cell.Source, &lines); err == nil {
			parts = append(parts, strings.Join(lines, ""))
			continue
		}

		var s string
		if err := json.Unmarshal(cell.Source, &s); err == nil {
			parts = append(parts, s)
			continue
		}
		// Cells with a malformed source field are skipped, not fatal.
	}

	return strings.Join(parts, "\n"), nil
}
