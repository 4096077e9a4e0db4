// ABOUTME: Tests for sources command
// ABOUTME: Verifies command structure and empty-store messaging

package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewSourcesCmd(t *testing.T) {
	cmd := NewSourcesCmd()

	if cmd.Use != "sources" {
		t.Errorf("Use = %q, want %q", cmd.Use, "sources")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestSourcesCmd_EmptyStore(t *testing.T) {
	dir := t.TempDir()
	setEnv(t, "CONTEXT_STORE_PATH", filepath.Join(dir, "store.json"))
	setEnv(t, "CONTEXT_SOURCE_DIR", filepath.Join(dir, "corpus"))
	setEnv(t, "BEDROCK_EMBEDDER", "lexical")

	quiet = false

	root := NewRootCmd()
	var output bytes.Buffer
	root.SetOut(&output)
	root.SetErr(&output)
	root.SetArgs([]string{"sources"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output.String(), "empty") {
		t.Errorf("empty store should be reported, got:\n%s", output.String())
	}
}
