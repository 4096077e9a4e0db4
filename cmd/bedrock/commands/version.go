// ABOUTME: Version command reporting the binary's release identity
// ABOUTME: Values are stamped at build time via ldflags; defaults mark dev builds
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo is the release identity stamped into the binary.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// versionInfo holds dev-build placeholders until main stamps real values.
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
}

// SetVersion records the build stamp. main calls it once at startup with
// the ldflags-injected values.
func SetVersion(version, commit, date string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the Bedrock build stamp",
		Long: `Print the version, commit, and build date of this Bedrock binary.

Release builds stamp these via ldflags; a "dev" version means the binary
was built from source without a release stamp.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bedrock %s\n", versionInfo.Version)
			fmt.Fprintf(out, "Commit: %s\n", versionInfo.Commit)
			fmt.Fprintf(out, "Built:  %s\n", versionInfo.Date)
		},
	}
}
