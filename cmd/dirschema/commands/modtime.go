package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// ModTimeCmd prints the modification time of a schema document's
// backing resource
var ModTimeCmd = &cobra.Command{
	Use:   "modtime <schema>",
	Short: "Show when a schema document was last modified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := newParser(cmd)
		if err != nil {
			return err
		}

		mt, err := parser.ModificationTime(args[0])
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(cmd, map[string]string{
				"schema":   args[0],
				"modified": mt.Format(time.RFC3339),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), mt.Format(time.RFC3339))
		return nil
	},
}
