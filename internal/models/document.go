// ABOUTME: Document model and the supported source format tags
// ABOUTME: Format resolution maps file extensions to extraction strategies
package models

import (
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies how a source document's text is extracted.
type Format string

// Supported source formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatNotebook Format = "notebook"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

// formatsByExtension maps lowercase file extensions to formats.
var formatsByExtension = map[string]Format{
	".txt":   FormatText,
	".md":    FormatMarkdown,
	".ipynb": FormatNotebook,
	".json":  FormatJSON,
	".pdf":   FormatPDF,
}

// FormatForPath resolves the format for a file path by its extension.
// Extension matching is case-insensitive. The second return is false for
// unsupported extensions; such files are skipped, not errors.
func FormatForPath(path string) (Format, bool) {
	format, ok := formatsByExtension[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// SupportedFormats returns the recognized extensions, sorted.
func SupportedFormats() []string {
	exts := make([]string, 0, len(formatsByExtension))
	for ext := range formatsByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Document is one extracted source: normalized text plus provenance.
// Source is the file name or upload handle the text came from.
type Document struct {
	Source  string `json:"source"`
	Format  Format `json:"format"`
	RawSize int    `json:"raw_size"`
	Text    string `json:"text"`
}
