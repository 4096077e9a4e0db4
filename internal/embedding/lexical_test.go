// ABOUTME: Tests for the lexical term-weight embedder
// ABOUTME: Verifies normalization, determinism, and tokenization behavior
package embedding

import (
	"context"
	"math"
	"testing"
)

func TestSignature_Empty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"punctuation only", "!!! ... 123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sig := Signature(tt.text); sig != nil {
				t.Errorf("Signature(%q) = %v, want nil", tt.text, sig)
			}
		})
	}
}

func TestSignature_L2Normalized(t *testing.T) {
	sig := Signature("the quick brown fox jumps over the lazy dog")

	var norm float64
	for _, w := range sig {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("squared norm = %f, want 1.0", norm)
	}
}

func TestSignature_CaseInsensitive(t *testing.T) {
	a := Signature("Hello World")
	b := Signature("hello world")

	if len(a) != len(b) {
		t.Fatalf("signature sizes differ: %d vs %d", len(a), len(b))
	}
	for term, w := range a {
		if math.Abs(b[term]-w) > 1e-12 {
			t.Errorf("term %q weight differs: %f vs %f", term, w, b[term])
		}
	}
}

func TestSignature_RepeatedTermsWeighHeavier(t *testing.T) {
	sig := Signature("go go go python")
	if sig["go"] <= sig["python"] {
		t.Errorf("repeated term weight %f not above single term weight %f", sig["go"], sig["python"])
	}
}

func TestLexicalEmbedder_SameKeySpace(t *testing.T) {
	e := NewLexicalEmbedder()
	ctx := context.Background()

	doc, err := e.EmbedDocument(ctx, "binary search trees")
	if err != nil {
		t.Fatalf("EmbedDocument() error = %v", err)
	}
	query, err := e.EmbedQuery(ctx, "binary search trees")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}

	if len(doc.Terms) != len(query.Terms) {
		t.Fatal("document and query signatures differ for identical text")
	}
	for term, w := range doc.Terms {
		if math.Abs(query.Terms[term]-w) > 1e-12 {
			t.Errorf("term %q differs between document and query keys", term)
		}
	}
	if doc.Vector != nil {
		t.Error("lexical key must not carry a vector")
	}
}

func TestLexicalEmbedder_Name(t *testing.T) {
	if got := NewLexicalEmbedder().Name(); got != "lexical" {
		t.Errorf("Name() = %q, want lexical", got)
	}
}
