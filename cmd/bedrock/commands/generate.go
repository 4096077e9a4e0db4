// ABOUTME: CLI command to generate grounded learning checkpoints
// ABOUTME: Retrieves context for the problem statement, then calls the LLM
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/bedrock/internal/models"
	"github.com/joho/godotenv"
)

var (
	generateNoContext   bool
	generateContextFile string
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <problem>",
		Short: "Generate learning checkpoints for a problem statement",
		Long: `Generate a sequence of learning checkpoints for a problem statement.

The problem statement is used to retrieve relevant context from the
store, the context is inlined into the generation prompt, and the
model's JSON response is normalized into checkpoint objects. Requires
OPENAI_API_KEY.

Examples:
  bedrock generate "Build a linked list in Python"
  bedrock generate --no-context "Implement quicksort"
  bedrock generate --context-file syllabus.md "Write a web scraper"`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().BoolVar(&generateNoContext, "no-context", false, "Skip context retrieval and generate ungrounded")
	cmd.Flags().StringVar(&generateContextFile, "context-file", "", "Ground on this file instead of the corpus")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	problem := args[0]

	pipeline, cfg, err := buildPipeline()
	if err != nil {
		return err
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	if generator == nil {
		return fmt.Errorf("checkpoint generation requires OPENAI_API_KEY")
	}

	var grounding *models.GroundingContext
	if !generateNoContext {
		var source models.GroundingSource = models.BackendCorpus{}
		if generateContextFile != "" {
			doc, err := pipeline.LoadFile(cmd.Context(), generateContextFile)
			if err != nil {
				return fmt.Errorf("loading context file: %w", err)
			}
			source = models.AdHocContext{Name: doc.Source, Text: doc.Text}
		}
		grounding, err = pipeline.RetrieveContext(cmd.Context(), problem, source)
		if err != nil {
			return fmt.Errorf("retrieving context: %w", err)
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "Grounding on %d chunk(s)\n", len(grounding.Results))
		}
	}

	checkpoints, err := generator.Generate(cmd.Context(), problem, grounding)
	if err != nil {
		return fmt.Errorf("generating checkpoints: %w", err)
	}

	if outputFormat == "json" || outputFormat == "auto" {
		jsonData, err := json.MarshalIndent(checkpoints, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, cp := range checkpoints {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", cp.Index+1, cp.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "   Objective: %s\n", cp.Objective)
		fmt.Fprintf(cmd.OutOrStdout(), "   Signature: %s\n", cp.FunctionSignature)
		for _, hint := range cp.Hints {
			fmt.Fprintf(cmd.OutOrStdout(), "   Hint: %s\n", hint)
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated %d checkpoint(s)\n", len(checkpoints))
	}
	return nil
}
