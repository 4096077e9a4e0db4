// ABOUTME: CLI command to search the context store
// ABOUTME: Retrieves the top-ranked chunks for a query, corpus or ad-hoc
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/bedrock/internal/core"
	"github.com/harper/bedrock/internal/models"
	"github.com/joho/godotenv"
)

var (
	searchContextFile string
	searchTopK        int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the context store",
		Long: `Search the indexed corpus for the chunks most relevant to a query.

Chunks are scored against the query embedding and returned best
first. With --context-file, the given file is searched instead of
the corpus; its contents are never added to the store.

Examples:
  bedrock search "binary search trees"
  bedrock search --top-k 8 "recursion"
  bedrock search --context-file notes.md "recursion"
  bedrock search --format json "error handling"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchContextFile, "context-file", "", "Search this file instead of the corpus")
	cmd.Flags().IntVar(&searchTopK, "top-k", 4, "Maximum chunks to retrieve")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	// Validate top-k flag
	if err := validatePositiveInt(searchTopK, "top-k"); err != nil {
		return err
	}

	query := args[0]

	pipeline, cfg, err := buildPipeline()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = searchTopK
	}

	source, err := resolveSearchSource(cmd, pipeline)
	if err != nil {
		return err
	}

	grounding, err := pipeline.RetrieveContext(cmd.Context(), query, source)
	if err != nil {
		return fmt.Errorf("searching context: %w", err)
	}

	if len(grounding.Results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No context found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(grounding.Results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tSCORE\tSOURCE\tPREVIEW\n")
	fmt.Fprintf(w, "----\t-----\t------\t-------\n")
	for _, r := range grounding.Results {
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\n",
			r.Rank,
			r.Score,
			truncate(r.Chunk.Source, 25),
			truncate(r.Chunk.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(grounding.Results))
	}
	return nil
}

// resolveSearchSource returns the grounding source for the search: the
// contents of --context-file when given, otherwise the indexed corpus.
func resolveSearchSource(cmd *cobra.Command, pipeline *core.Pipeline) (models.GroundingSource, error) {
	if searchContextFile == "" {
		return models.BackendCorpus{}, nil
	}
	doc, err := pipeline.LoadFile(cmd.Context(), searchContextFile)
	if err != nil {
		return nil, fmt.Errorf("loading context file: %w", err)
	}
	return models.AdHocContext{Name: doc.Source, Text: doc.Text}, nil
}
