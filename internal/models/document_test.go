// ABOUTME: Tests for document format resolution
// ABOUTME: Extension mapping, case handling, and the supported set
package models

import (
	"strings"
	"testing"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		ok     bool
	}{
		{"notes.txt", FormatText, true},
		{"README.md", FormatMarkdown, true},
		{"lesson.ipynb", FormatNotebook, true},
		{"data.json", FormatJSON, true},
		{"paper.pdf", FormatPDF, true},
		{"PAPER.PDF", FormatPDF, true},
		{"dir/nested/guide.MD", FormatMarkdown, true},
		{"image.png", "", false},
		{"no_extension", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, ok := FormatForPath(tt.path)
			if ok != tt.ok {
				t.Fatalf("FormatForPath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if format != tt.format {
				t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, format, tt.format)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	exts := SupportedFormats()

	if len(exts) != 5 {
		t.Fatalf("got %d extensions %v, want 5", len(exts), exts)
	}
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Fatalf("extensions not sorted: %v", exts)
		}
	}
	joined := strings.Join(exts, " ")
	for _, want := range []string{".txt", ".md", ".ipynb", ".json", ".pdf"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing extension %s in %v", want, exts)
		}
	}
}
