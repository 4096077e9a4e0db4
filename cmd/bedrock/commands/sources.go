// ABOUTME: CLI command to list sources indexed in the context store
// ABOUTME: Shows store metadata and per-source chunk counts
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewSourcesCmd creates the sources command
func NewSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List sources in the context store",
		Long: `List the sources currently indexed in the context store.

Shows each source with its chunk count, plus when the store was
built and with which embedder.

Examples:
  bedrock sources
  bedrock sources --format json`,
		Args: cobra.NoArgs,
		RunE: runSources,
	}

	return cmd
}

func runSources(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	pipeline, _, err := buildPipeline()
	if err != nil {
		return err
	}

	snap := pipeline.Snapshot()
	if snap.Empty() {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Context store is empty. Run 'bedrock rebuild' to index the corpus.")
		}
		return nil
	}

	counts := make(map[string]int)
	for _, chunk := range snap.Chunks {
		counts[chunk.Source]++
	}
	sources := snap.Sources()

	if outputFormat == "json" {
		entries := make([]map[string]any, 0, len(sources))
		for _, source := range sources {
			entries = append(entries, map[string]any{
				"source": source,
				"chunks": counts[source],
			})
		}
		jsonData, err := json.MarshalIndent(map[string]any{
			"built_at": snap.BuiltAt,
			"embedder": snap.Embedder,
			"sources":  entries,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SOURCE\tCHUNKS\n")
	fmt.Fprintf(w, "------\t------\n")
	for _, source := range sources {
		fmt.Fprintf(w, "%s\t%d\n", truncate(source, 50), counts[source])
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d source(s), %d chunk(s), built %s with %s embedder\n",
			len(sources), len(snap.Chunks), formatTime(snap.BuiltAt), snap.Embedder)
	}
	return nil
}
