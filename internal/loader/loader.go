// ABOUTME: Document loader turning corpus files and uploads into normalized text
// ABOUTME: Dispatches extraction by format tag and applies the oversize trim
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/bedrock/internal/models"
)

// ErrUnsupportedFormat is returned for files outside the five supported
// formats. Callers skip the document and continue.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError wraps a format-specific parse failure. The affected
// document is skipped; a rebuild never aborts on one bad file.
type ExtractionError struct {
	Source string
	Format models.Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s (%s): %v", e.Source, e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Loader reads source documents and produces normalized, trimmed text.
type Loader struct {
	maxChars int
	runner   CommandRunner
}

// Option configures the loader.
type Option func(*Loader)

// WithCommandRunner replaces the external command runner used for PDF
// extraction. Used by tests.
func WithCommandRunner(r CommandRunner) Option {
	return func(l *Loader) { l.runner = r }
}

// New creates a loader. maxChars is the oversize trim threshold in runes;
// extracted text beyond it is deterministically cut to a prefix.
func New(maxChars int, opts ...Option) *Loader {
	l := &Loader{
		maxChars: maxChars,
		runner:   &execRunner{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file at path, resolving the format from its extension.
func (l *Loader) Load(ctx context.Context, path string) (*models.Document, error) {
	format, ok := models.FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat,
			filepath.Ext(path), strings.Join(models.SupportedFormats(), ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return l.LoadBytes(ctx, filepath.Base(path), format, data)
}

// LoadBytes extracts normalized text from raw bytes of a known format.
// source is the document identifier (file name or upload handle).
func (l *Loader) LoadBytes(ctx context.Context, source string, format models.Format, data []byte) (*models.Document, error) {
	var text string
	var err error

	switch format {
	case models.FormatText, models.FormatMarkdown, models.FormatJSON:
		// Plain decode; markdown and JSON are retrieved as-is, the chunker
		// handles their structure via paragraph boundaries.
		text = string(data)
	case models.FormatNotebook:
		text, err = extractNotebook(data)
	case models.FormatPDF:
		text, err = l.extractPDF(ctx, source, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, &ExtractionError{Source: source, Format: format, Err: err}
	}

	return &models.Document{
		Source:  source,
		Format:  format,
		RawSize: len(data),
		Text:    l.trim(source, text),
	}, nil
}

// trim strips surrounding whitespace and cuts the text to the first
// maxChars runes. The cut is lossy but deterministic: the same input
// always yields the same prefix.
func (l *Loader) trim(source, text string) string {
	text = strings.TrimSpace(text)
	if l.maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= l.maxChars {
		return text
	}
	log.Printf("Warning: %s exceeds %d chars, trimming %d", source, l.maxChars, len(runes)-l.maxChars)
	return string(runes[:l.maxChars])
}
