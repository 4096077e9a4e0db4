// ABOUTME: CLI command to ingest text or a file into the context store
// ABOUTME: Appends new chunks to the persisted snapshot without a full rebuild
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	ingestName string
	ingestFile string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Ingest text into the context store",
		Long: `Chunk, embed, and append text to the persistent context store.

Text is given as an argument, piped on stdin, or read from a file
with --file (any supported format). Ingested chunks survive restarts
but are replaced by the next full rebuild.

Examples:
  bedrock ingest "Goroutines are lightweight threads managed by the runtime."
  bedrock ingest --file lecture_notes.pdf
  cat notes.md | bedrock ingest --name course-notes`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestName, "name", "", "Source label for the ingested text")
	cmd.Flags().StringVar(&ingestFile, "file", "", "Ingest the contents of this file")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	pipeline, _, err := buildPipeline()
	if err != nil {
		return err
	}

	name := ingestName
	var text string
	switch {
	case ingestFile != "":
		doc, err := pipeline.LoadFile(cmd.Context(), ingestFile)
		if err != nil {
			return fmt.Errorf("loading file: %w", err)
		}
		text = doc.Text
		if name == "" {
			name = doc.Source
		}
	case len(args) == 1:
		text = args[0]
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if name == "" {
		name = fmt.Sprintf("ingest_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	}

	report, err := pipeline.IngestText(cmd.Context(), name, text)
	if err != nil {
		return fmt.Errorf("ingesting text: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]any{
			"source": name,
			"chunks": report.Chunks,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d chunk(s) as %s\n", report.Chunks, name)
	}
	return nil
}
