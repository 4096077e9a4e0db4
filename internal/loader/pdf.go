// ABOUTME: PDF extraction via the pdftotext command with a mockable runner
// ABOUTME: Page text is emitted in order; failures surface as ExtractionError
package loader

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its stdout.
// It exists so tests can stub out the pdftotext dependency.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	return out, nil
}

// extractPDF writes the raw bytes to a temp file and extracts page text
// with pdftotext, which concatenates pages in document order.
func (l *Loader) extractPDF(ctx context.Context, source string, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "bedrock-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	// -q suppresses warnings on stderr, "-" sends text to stdout
	out, err := l.runner.Run(ctx, "pdftotext", "-q", tmp.Name(), "-")
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("no extractable text in %s", source)
	}
	return text, nil
}
