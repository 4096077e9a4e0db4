// ABOUTME: Tests for checkpoint prompt assembly, JSON extraction, normalization
// ABOUTME: Uses a stub chat client; no network calls
package checkpoint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/bedrock/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Implement a stack", nil)

	for _, want := range []string{
		"instructional designer",
		"JSON schema",
		"Implement a stack",
		"3 to 6 checkpoints",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Reference context") {
		t.Error("prompt without grounding must not contain a context block")
	}
}

func TestBuildPrompt_WithGrounding(t *testing.T) {
	gc := &models.GroundingContext{Joined: "[Chunk 1 | notes.md] Stacks are LIFO."}
	prompt := BuildPrompt("Implement a stack", gc)

	if !strings.Contains(prompt, "Stacks are LIFO.") {
		t.Error("prompt missing grounding material")
	}
	if !strings.Contains(prompt, "do not invent topics") {
		t.Error("prompt missing grounding instruction")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantLen int
	}{
		{
			name:    "bare array",
			input:   `[{"title": "One"}, {"title": "Two"}]`,
			wantLen: 2,
		},
		{
			name:    "fenced block",
			input:   "Here you go:\n```json\n[{\"title\": \"One\"}]\n```\nEnjoy!",
			wantLen: 1,
		},
		{
			name:    "empty response",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "prose only",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "empty fence",
			input:   "```json\n```",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON() error = %v", err)
			}
			list, ok := parsed.([]any)
			if !ok {
				t.Fatalf("parsed %T, want list", parsed)
			}
			if len(list) != tt.wantLen {
				t.Errorf("got %d elements, want %d", len(list), tt.wantLen)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cp := Normalize(map[string]any{}, 3)

	if cp.Title != "Untitled checkpoint" {
		t.Errorf("Title = %q", cp.Title)
	}
	if cp.ValidationType != "custom" {
		t.Errorf("ValidationType = %q", cp.ValidationType)
	}
	if cp.Index != 3 {
		t.Errorf("Index = %d, want 3", cp.Index)
	}
	if len(cp.Rules) != 0 || len(cp.Hints) != 0 {
		t.Error("missing list fields should normalize to empty")
	}
}

func TestNormalize_Coercion(t *testing.T) {
	raw := map[string]any{
		"title":       "  Reverse a string  ",
		"objective":   "",
		"rules":       []any{"no builtins", "  ", 42},
		"hints":       "just one hint",
		"test_inputs": "abc",
	}
	cp := Normalize(raw, 0)

	if cp.Title != "Reverse a string" {
		t.Errorf("Title = %q, want trimmed", cp.Title)
	}
	if cp.Objective != "Define the goal for this step." {
		t.Errorf("blank objective should fall back, got %q", cp.Objective)
	}
	if len(cp.Rules) != 2 || cp.Rules[0] != "no builtins" || cp.Rules[1] != "42" {
		t.Errorf("Rules = %v", cp.Rules)
	}
	if len(cp.Hints) != 1 || cp.Hints[0] != "just one hint" {
		t.Errorf("string hint should become a one-element list, got %v", cp.Hints)
	}
	if len(cp.TestInputs) != 1 {
		t.Errorf("scalar test input should become a one-element list, got %v", cp.TestInputs)
	}
}

func TestNormalizeList(t *testing.T) {
	raw := []any{
		map[string]any{"title": "First"},
		"not an object",
		map[string]any{"title": "Second"},
	}
	got := NormalizeList(raw)

	if len(got) != 2 {
		t.Fatalf("got %d checkpoints, want 2 (non-objects skipped)", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 1 {
		t.Errorf("indexes = %d, %d; want contiguous from 0", got[0].Index, got[1].Index)
	}
}

func TestNormalizeList_SingleObject(t *testing.T) {
	got := NormalizeList(map[string]any{"title": "Solo"})
	if len(got) != 1 || got[0].Title != "Solo" {
		t.Errorf("single object should normalize as one-element list, got %v", got)
	}
}

type stubChat struct {
	response string
	err      error
	prompt   string
}

func (s *stubChat) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestGenerator_Generate(t *testing.T) {
	stub := &stubChat{response: "```json\n[{\"title\": \"Parse input\", \"validation_type\": \"structure\"}]\n```"}
	g := NewGenerator(stub)

	got, err := g.Generate(context.Background(), "Build a CSV parser", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Parse input" || got[0].ValidationType != "structure" {
		t.Errorf("got %+v", got)
	}
	if !strings.Contains(stub.prompt, "Build a CSV parser") {
		t.Error("problem statement missing from prompt")
	}
}

func TestGenerator_Errors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubChat
	}{
		{"client failure", &stubChat{err: errors.New("rate limited")}},
		{"unparseable response", &stubChat{response: "sorry, no"}},
		{"empty list", &stubChat{response: "[]"}},
		{"no objects", &stubChat{response: `["just", "strings"]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGenerator(tt.stub).Generate(context.Background(), "problem", nil); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := NewGenerator(&stubChat{}).Generate(context.Background(), "  ", nil); err == nil {
		t.Error("expected error for empty problem statement")
	}
}
