package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridian/dirschema/version"
)

// VersionCmd shows dirschema version information
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dirschema version information",
	Long:  `Display version, build time, commit hash, and platform information for the dirschema binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if jsonOutput(cmd) {
			return printJSON(cmd, info)
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n", info.Platform)
		fmt.Fprintf(cmd.OutOrStdout(), "Go: %s\n", info.GoVersion)
		return nil
	},
}
