// ABOUTME: Checkpoint generation from a problem statement and grounding context
// ABOUTME: Builds the prompt, extracts fenced JSON, normalizes model output
package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/bedrock/internal/models"
)

// ChatClient produces a completion for a prompt. *llm.OpenAIClient
// satisfies it.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator turns a problem statement into a normalized checkpoint list,
// optionally grounded on retrieved context.
type Generator struct {
	client ChatClient
}

// NewGenerator creates a Generator backed by the given chat client.
func NewGenerator(client ChatClient) *Generator {
	return &Generator{client: client}
}

// Defaults substituted for missing or blank checkpoint fields.
const (
	defaultTitle          = "Untitled checkpoint"
	defaultObjective      = "Define the goal for this step."
	defaultConcept        = "Key concept involved."
	defaultSignature      = "function(arg: type) -> return_type"
	defaultExpectedOutput = "Describe expected behavior or result."
	defaultValidationType = "custom"
)

// fieldSchema is embedded in the prompt so the model returns objects the
// normalizer recognizes.
var fieldSchema = map[string]string{
	"title":              "Short name of the checkpoint (<= 8 words).",
	"objective":          "Student-facing goal for this step.",
	"concept":            "Key concept(s) applied here.",
	"function_signature": "Function signature to implement.",
	"rules":              "List of hard constraints.",
	"expected_output":    "Describe the expected behavior/output.",
	"hints":              "List of helpful hints (<= 3).",
	"test_inputs":        "Example inputs to try.",
	"expected_outputs":   "Outputs aligned to test_inputs.",
	"validation_type":    "One of: structure, correctness, integration, custom.",
}

// BuildPrompt assembles the generation prompt. When grounding is present
// its joined context block is inlined and the model is told to stay
// within it.
func BuildPrompt(problem string, grounding *models.GroundingContext) string {
	schema, _ := json.MarshalIndent(fieldSchema, "", "  ")

	var b strings.Builder
	b.WriteString("You are an instructional designer generating programming checkpoints.\n")
	b.WriteString("Return ONLY valid JSON (no prose) representing a list of checkpoint objects.\n")
	b.WriteString("Each checkpoint must follow this JSON schema: ")
	b.Write(schema)
	b.WriteString("\n")

	if grounding != nil && grounding.Joined != "" {
		b.WriteString("Reference context (ground checkpoints on this material first):\n")
		b.WriteString(grounding.Joined)
		b.WriteString("\nUse only details present in the reference context; do not invent topics.\n")
	}

	b.WriteString("Rules:\n")
	b.WriteString("- 3 to 6 checkpoints total.\n")
	b.WriteString("- Keep titles concise.\n")
	b.WriteString("- Provide actionable rules and hints.\n")
	b.WriteString("- Prefer beginner-friendly guidance.\n")
	b.WriteString("- If reference context exists, align objectives, concepts, and tests to it.\n")
	b.WriteString("Problem statement:\n")
	b.WriteString(strings.TrimSpace(problem))
	b.WriteString("\nRespond with JSON array only.\n")
	return b.String()
}

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractJSON pulls the JSON payload out of a model response, preferring
// a ```json fenced block, and decodes it.
func ExtractJSON(text string) (any, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil, fmt.Errorf("response was empty; no JSON to parse")
	}

	candidate := cleaned
	if m := fencedJSON.FindStringSubmatch(cleaned); m != nil {
		candidate = strings.TrimSpace(m[1])
	}
	if candidate == "" {
		return nil, fmt.Errorf("response missing JSON payload")
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		snippet := candidate
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		return nil, fmt.Errorf("parsing response JSON: %w; snippet: %s",
			err, strings.ReplaceAll(snippet, "\n", " "))
	}
	return parsed, nil
}

// Normalize coerces one decoded checkpoint object into a Checkpoint,
// substituting defaults for missing or blank fields.
func Normalize(raw map[string]any, idx int) models.Checkpoint {
	return models.Checkpoint{
		Title:             coerceString(raw["title"], defaultTitle),
		Objective:         coerceString(raw["objective"], defaultObjective),
		Concept:           coerceString(raw["concept"], defaultConcept),
		FunctionSignature: coerceString(raw["function_signature"], defaultSignature),
		Rules:             coerceStringList(raw["rules"]),
		ExpectedOutput:    coerceString(raw["expected_output"], defaultExpectedOutput),
		Hints:             coerceStringList(raw["hints"]),
		TestInputs:        coerceAnyList(raw["test_inputs"]),
		ExpectedOutputs:   coerceAnyList(raw["expected_outputs"]),
		ValidationType:    coerceString(raw["validation_type"], defaultValidationType),
		Index:             idx,
	}
}

// NormalizeList coerces a decoded response into checkpoints. A single
// object is treated as a one-element list; non-object elements are
// skipped. Indexes are assigned in response order.
func NormalizeList(raw any) []models.Checkpoint {
	var items []any
	switch v := raw.(type) {
	case nil:
	case []any:
		items = v
	default:
		items = []any{v}
	}

	var out []models.Checkpoint
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Normalize(obj, len(out)))
	}
	return out
}

// Generate runs the full flow: prompt, completion, extraction,
// normalization. An empty checkpoint list after parsing is an error.
func (g *Generator) Generate(ctx context.Context, problem string, grounding *models.GroundingContext) ([]models.Checkpoint, error) {
	if strings.TrimSpace(problem) == "" {
		return nil, fmt.Errorf("problem statement is empty")
	}

	raw, err := g.client.Complete(ctx, BuildPrompt(problem, grounding))
	if err != nil {
		return nil, fmt.Errorf("generating checkpoints: %w", err)
	}

	parsed, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	checkpoints := NormalizeList(parsed)
	if len(checkpoints) == 0 {
		return nil, fmt.Errorf("model returned no checkpoints after parsing")
	}
	return checkpoints, nil
}

func coerceString(v any, fallback string) string {
	if s, ok := v.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func coerceStringList(v any) []string {
	var out []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			s := strings.TrimSpace(fmt.Sprintf("%v", item))
			if s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceAnyList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case nil:
		return nil
	default:
		return []any{val}
	}
}
