// ABOUTME: Checkpoint model, the structured learning step the LLM produces
// ABOUTME: Fields mirror the JSON schema given to the generation prompt
package models

// Checkpoint is one generated learning step. The generation service
// returns a JSON array of these; normalization fills defaults for any
// field the model omitted or mistyped.
type Checkpoint struct {
	Title             string   `json:"title"`
	Objective         string   `json:"objective"`
	Concept           string   `json:"concept"`
	FunctionSignature string   `json:"function_signature"`
	Rules             []string `json:"rules"`
	ExpectedOutput    string   `json:"expected_output"`
	Hints             []string `json:"hints"`
	TestInputs        []any    `json:"test_inputs"`
	ExpectedOutputs   []any    `json:"expected_outputs"`
	ValidationType    string   `json:"validation_type"`
	Index             int      `json:"index"`
}
