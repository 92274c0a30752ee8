package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/veridian/dirschema/schema"
)

// ParseCmd resolves one object type from a schema document
var ParseCmd = &cobra.Command{
	Use:   "parse <schema> <type>",
	Short: "Resolve one object type from a schema document",
	Long: `Load the named schema document, apply its inheritance directives,
and print the fully resolved schema for one object type.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := newParser(cmd)
		if err != nil {
			return err
		}

		resolved, err := parser.Parse(args[0], args[1])
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(cmd, resolved)
		}
		printResolved(resolved)
		return nil
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

func printResolved(resolved *schema.ResolvedObjectSchema) {
	pterm.DefaultSection.Printf("%s / %s", resolved.SchemaName, resolved.ObjectType)

	if resolved.ObjectClass != "" {
		pterm.Printf("Class:     %s\n", resolved.ObjectClass)
	}
	if resolved.ObjectCategory != "" {
		pterm.Printf("Category:  %s\n", resolved.ObjectCategory)
	}
	if resolved.BaseDN != "" {
		pterm.Printf("Base DN:   %s\n", resolved.BaseDN)
	}
	if resolved.DefaultContainer != "" {
		pterm.Printf("Container: %s\n", resolved.DefaultContainer)
	}
	if len(resolved.RequiredAttributes) > 0 {
		pterm.Printf("Required:  %s\n", strings.Join(resolved.RequiredAttributes, ", "))
	}

	table := pterm.TableData{{"Attribute", "Friendly name", "Converter"}}
	names := make([]string, 0, len(resolved.Attributes))
	for name := range resolved.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		table = append(table, []string{name, resolved.Attributes[name], resolved.Converters[name]})
	}
	pterm.DefaultTable.WithHasHeader().WithData(table).Render()

	pterm.Success.Printf("%d attributes, %d converter assignments\n",
		len(resolved.Attributes), len(resolved.Converters))
}
