// ABOUTME: Tests for rebuild command
// ABOUTME: Verifies command structure and end-to-end rebuild against a temp corpus

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRebuildCmd(t *testing.T) {
	cmd := NewRebuildCmd()

	if cmd.Use != "rebuild" {
		t.Errorf("Use = %q, want %q", cmd.Use, "rebuild")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if !findSubstring(cmd.Long, ".pdf") {
		t.Error("Long description should list supported formats")
	}
}

// setEnv sets an environment variable for the duration of the test.
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
}

func TestRebuildCmd_Run(t *testing.T) {
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(corpusDir, "notes.txt"), []byte("Slices grow by reallocating the backing array."), 0644); err != nil {
		t.Fatal(err)
	}

	setEnv(t, "CONTEXT_STORE_PATH", filepath.Join(dir, "store.json"))
	setEnv(t, "CONTEXT_SOURCE_DIR", corpusDir)
	setEnv(t, "BEDROCK_EMBEDDER", "lexical")

	quiet = false
	outputFormat = "auto"

	root := NewRootCmd()
	var output bytes.Buffer
	root.SetOut(&output)
	root.SetErr(&output)
	root.SetArgs([]string{"rebuild"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output.String(), "1 source(s)") {
		t.Errorf("output should report indexed sources, got:\n%s", output.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "store.json")); err != nil {
		t.Errorf("store file not written: %v", err)
	}
}
