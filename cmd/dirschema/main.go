package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridian/dirschema/cmd/dirschema/commands"
	"github.com/veridian/dirschema/logger"
)

var rootCmd = &cobra.Command{
	Use:   "dirschema",
	Short: "dirschema - directory-service schema resolution",
	Long: `dirschema resolves declarative object-schema documents for a
directory-service client: it loads a named document, applies its
inheritance directives (include, extends, extends_default), validates
the merged definitions, and prints the resolved schemas.

Examples:
  dirschema parse user user          # Resolve the user type from the user document
  dirschema list user                # Resolve every type the user document defines
  dirschema parse custom staff --dir ./schemas
  dirschema modtime custom --dir ./schemas`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().String("dir", "", "Schema document directory (default: built-in documents)")
	rootCmd.PersistentFlags().String("ext", "", "Schema document file extension (default: .yml)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: search for dirschema.yml)")

	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.ModTimeCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
