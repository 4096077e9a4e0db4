// ABOUTME: Tests for document loading, format dispatch, and oversize trim
// ABOUTME: Verifies deterministic trimming and error taxonomy
package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/bedrock/internal/models"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		format models.Format
		ok     bool
	}{
		{"notes.txt", models.FormatText, true},
		{"README.md", models.FormatMarkdown, true},
		{"lesson.ipynb", models.FormatNotebook, true},
		{"data.json", models.FormatJSON, true},
		{"paper.PDF", models.FormatPDF, true},
		{"image.png", "", false},
		{"no_extension", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, ok := models.FormatForPath(tt.path)
			if ok != tt.ok {
				t.Fatalf("FormatForPath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && format != tt.format {
				t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, format, tt.format)
			}
		})
	}
}

func TestLoadBytes_Text(t *testing.T) {
	l := New(1000)

	doc, err := l.LoadBytes(context.Background(), "notes.txt", models.FormatText, []byte("  hello world  \n"))
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	if doc.Text != "hello world" {
		t.Errorf("Text = %q, want %q", doc.Text, "hello world")
	}
	if doc.Source != "notes.txt" {
		t.Errorf("Source = %q, want %q", doc.Source, "notes.txt")
	}
	if doc.Format != models.FormatText {
		t.Errorf("Format = %q, want %q", doc.Format, models.FormatText)
	}
	if doc.RawSize != 16 {
		t.Errorf("RawSize = %d, want 16", doc.RawSize)
	}
}

func TestLoadBytes_TrimThreshold(t *testing.T) {
	const threshold = 1000
	l := New(threshold)

	original := strings.Repeat("abcde", 1000) // 5000 chars
	doc, err := l.LoadBytes(context.Background(), "big.txt", models.FormatText, []byte(original))
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	if len([]rune(doc.Text)) != threshold {
		t.Errorf("trimmed length = %d, want %d", len([]rune(doc.Text)), threshold)
	}
	if !strings.HasPrefix(original, doc.Text) {
		t.Error("trimmed text is not a prefix of the original")
	}
}

func TestLoadBytes_TrimDeterministic(t *testing.T) {
	l := New(50)
	input := []byte(strings.Repeat("determinism ", 20))

	first, err := l.LoadBytes(context.Background(), "a.txt", models.FormatText, input)
	if err != nil {
		t.Fatalf("first LoadBytes() error = %v", err)
	}
	second, err := l.LoadBytes(context.Background(), "a.txt", models.FormatText, input)
	if err != nil {
		t.Fatalf("second LoadBytes() error = %v", err)
	}

	if first.Text != second.Text {
		t.Error("repeated loads of identical input produced different text")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	l := New(1000)

	_, err := l.Load(context.Background(), "diagram.png")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Title\n\nBody text."), 0644); err != nil {
		t.Fatal(err)
	}

	l := New(1000)
	doc, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Format != models.FormatMarkdown {
		t.Errorf("Format = %q, want markdown", doc.Format)
	}
	if doc.Source != "doc.md" {
		t.Errorf("Source = %q, want doc.md (base name)", doc.Source)
	}
	if !strings.Contains(doc.Text, "Body text.") {
		t.Errorf("Text = %q, missing body", doc.Text)
	}
}
