// ABOUTME: CLI command to rebuild the context store from the corpus
// ABOUTME: Reindexes every supported document and reports the result
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewRebuildCmd creates the rebuild command
func NewRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the context store from the corpus directory",
		Long: `Rebuild the context store from scratch.

Walks the corpus directory, extracts text from every supported
document (.txt, .md, .ipynb, .json, .pdf), chunks and embeds it, and
atomically replaces the previous store. Unreadable documents are
skipped with a warning; the rebuild continues.

Examples:
  bedrock rebuild
  bedrock rebuild --format json`,
		Args: cobra.NoArgs,
		RunE: runRebuild,
	}

	return cmd
}

func runRebuild(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	pipeline, cfg, err := buildPipeline()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Corpus: %s\nStore:  %s\n", cfg.CorpusDir, cfg.StorePath)
	}

	report, err := pipeline.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("rebuilding context store: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunk(s) from %d source(s)\n", report.Chunks, report.Sources)
		for _, name := range report.SkippedDocs {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %s\n", name)
		}
		if report.DroppedChunks > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Dropped %d chunk(s) that failed embedding\n", report.DroppedChunks)
		}
	}
	return nil
}
