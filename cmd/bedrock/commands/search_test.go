// ABOUTME: Tests for search command
// ABOUTME: Verifies search command structure and flag validation

package commands

import (
	"testing"
)

func TestNewSearchCmd(t *testing.T) {
	cmd := NewSearchCmd()

	if cmd.Use != "search <query>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "search <query>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestSearchCmd_Flags(t *testing.T) {
	cmd := NewSearchCmd()

	topKFlag := cmd.Flags().Lookup("top-k")
	if topKFlag == nil {
		t.Fatal("--top-k flag not found")
	}
	if topKFlag.DefValue != "4" {
		t.Errorf("--top-k default = %q, want %q", topKFlag.DefValue, "4")
	}

	if cmd.Flags().Lookup("context-file") == nil {
		t.Error("--context-file flag not found")
	}
}

func TestSearchCmd_ArgsValidation(t *testing.T) {
	cmd := NewSearchCmd()

	// Should require exactly 1 argument
	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
}

func TestSearchCmd_Examples(t *testing.T) {
	cmd := NewSearchCmd()

	expectedParts := []string{
		"--top-k",
		"--context-file",
		"--format json",
	}

	for _, part := range expectedParts {
		if !findSubstring(cmd.Long, part) {
			t.Errorf("Long description should contain %q", part)
		}
	}
}
