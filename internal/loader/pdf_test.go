// ABOUTME: Tests for PDF extraction through the command runner
// ABOUTME: Uses a mock runner so pdftotext is not required for tests
package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/bedrock/internal/models"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error

	calledName string
	calledArgs []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.calledName = name
	m.calledArgs = args
	return m.output, m.err
}

func TestLoadBytes_PDF(t *testing.T) {
	runner := &mockRunner{output: []byte("Page one text.\n\nPage two text.\n")}
	l := New(1000, WithCommandRunner(runner))

	doc, err := l.LoadBytes(context.Background(), "paper.pdf", models.FormatPDF, []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	if doc.Text != "Page one text.\n\nPage two text." {
		t.Errorf("Text = %q", doc.Text)
	}
	if runner.calledName != "pdftotext" {
		t.Errorf("command = %q, want pdftotext", runner.calledName)
	}
}

func TestLoadBytes_PDFExtractionFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("boom")}
	l := New(1000, WithCommandRunner(runner))

	_, err := l.LoadBytes(context.Background(), "corrupt.pdf", models.FormatPDF, []byte("junk"))
	if err == nil {
		t.Fatal("expected error for failed extraction")
	}

	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("error = %T, want *ExtractionError", err)
	}
	if extractErr.Format != models.FormatPDF {
		t.Errorf("Format = %q, want pdf", extractErr.Format)
	}
}

func TestLoadBytes_PDFEmptyOutput(t *testing.T) {
	runner := &mockRunner{output: []byte("   \n")}
	l := New(1000, WithCommandRunner(runner))

	_, err := l.LoadBytes(context.Background(), "empty.pdf", models.FormatPDF, []byte("junk"))
	if err == nil {
		t.Fatal("expected error for PDF with no extractable text")
	}
}
