// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Defines verbose/quiet/format persistent flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ███████╗██████╗ ██████╗  ██████╗  ██████╗██╗  ██╗
██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔═══██╗██╔════╝██║ ██╔╝
██████╔╝█████╗  ██║  ██║██████╔╝██║   ██║██║     █████╔╝
██╔══██╗██╔══╝  ██║  ██║██╔══██╗██║   ██║██║     ██╔═██╗
██████╔╝███████╗██████╔╝██║  ██║╚██████╔╝╚██████╗██║  ██╗
╚═════╝ ╚══════╝╚═════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bedrock",
		Short: "Retrieval-grounded context and checkpoint generation",
		Long: banner + `

Bedrock indexes a directory of reference documents into a context
store and retrieves the most relevant chunks to ground LLM prompts.

Rebuild the store from your corpus, search it, ingest extra text,
and generate grounded learning checkpoints.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewRebuildCmd(),
		NewSearchCmd(),
		NewIngestCmd(),
		NewGenerateCmd(),
		NewSourcesCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
