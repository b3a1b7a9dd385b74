package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, set via ldflags:
//
//	-X github.com/sickn33/agskills/cmd/agskills/commands.Version=1.2.3
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go version of agskills.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "agskills version %s\n", Version)
		fmt.Fprintf(out, "  commit:    %s\n", Commit)
		fmt.Fprintf(out, "  built:     %s\n", Date)
		fmt.Fprintf(out, "  go:        %s\n", runtime.Version())
	},
}
