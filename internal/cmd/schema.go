package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema",
		Aliases: []string{"sc"},
		Short:   "Describe the fields of StockPro resources",
		Example: strings.TrimSpace(`
  stockpro schema list
  stockpro schema show product
  stockpro schema show stock -o json
`),
	}

	cmd.AddCommand(newSchemaListCmd())
	cmd.AddCommand(newSchemaShowCmd())
	return cmd
}

type schemaSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newSchemaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List described resources",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			names := schema.List()
			summaries := make([]schemaSummary, 0, len(names))
			for _, name := range names {
				s, err := schema.Get(name)
				if err != nil {
					return err
				}
				summaries = append(summaries, schemaSummary{Name: name, Description: s.Description})
			}

			if isJSON(cmd) {
				return printJSON(cmd, summaries)
			}
			f := newFormatter(cmd)
			f.StartTable([]string{"RESOURCE", "DESCRIPTION"})
			for _, s := range summaries {
				f.Row(s.Name, truncate(s.Description, 60))
			}
			return f.EndTable()
		}),
	}
}

func newSchemaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <resource>",
		Short: "Show the fields of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(args[0])
			s, err := schema.Get(name)
			if err != nil {
				return fmt.Errorf("schema %q not found; available: %s", name, strings.Join(schema.List(), ", "))
			}
			if isJSON(cmd) {
				return printJSON(cmd, s)
			}
			printSchemaText(ioStreams(cmd).Out, name, s)
			return nil
		}),
	}
}

func printSchemaText(out io.Writer, name string, s *schema.Schema) {
	_, _ = fmt.Fprintf(out, "Schema: %s\n", name)
	_, _ = fmt.Fprintf(out, "Type: %s\n", s.Type)
	if s.Description != "" {
		_, _ = fmt.Fprintf(out, "Description: %s\n", s.Description)
	}

	if len(s.Properties) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, "Fields:")

		propNames := make([]string, 0, len(s.Properties))
		for propName := range s.Properties {
			propNames = append(propNames, propName)
		}
		sort.Strings(propNames)

		required := make(map[string]bool, len(s.Required))
		for _, req := range s.Required {
			required[req] = true
		}
		for _, propName := range propNames {
			printSchemaField(out, propName, s.Properties[propName], required[propName])
		}
	}

	if len(s.Required) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintf(out, "Required: %s\n", strings.Join(s.Required, ", "))
	}
}

func printSchemaField(out io.Writer, name string, s *schema.Schema, required bool) {
	marker := ""
	if required {
		marker = " (required)"
	}
	typeName := s.Type
	if s.Items != nil {
		typeName = fmt.Sprintf("array<%s>", s.Items.Type)
	}

	_, _ = fmt.Fprintf(out, "  %s: %s%s\n", name, typeName, marker)
	if s.Description != "" {
		_, _ = fmt.Fprintf(out, "    %s\n", s.Description)
	}
	if len(s.Enum) > 0 {
		_, _ = fmt.Fprintf(out, "    Allowed values: %s\n", strings.Join(s.Enum, ", "))
	}
}
