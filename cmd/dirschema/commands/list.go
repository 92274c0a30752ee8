package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ListCmd resolves every object type a schema document defines
var ListCmd = &cobra.Command{
	Use:   "list <schema>",
	Short: "Resolve every object type a schema document defines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := newParser(cmd)
		if err != nil {
			return err
		}

		resolved, err := parser.ParseAll(args[0])
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(cmd, resolved)
		}

		table := pterm.TableData{{"Type", "Class", "Category", "Attributes", "Converters"}}
		for _, s := range resolved {
			table = append(table, []string{
				s.ObjectType,
				s.ObjectClass,
				s.ObjectCategory,
				fmt.Sprintf("%d", len(s.Attributes)),
				fmt.Sprintf("%d", len(s.Converters)),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		pterm.Success.Printf("%d object types resolved from %q\n", len(resolved), args[0])
		return nil
	},
}
