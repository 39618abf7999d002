package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the schema catalog the AI generates against",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.SetTitle("Datasource: %s", reg.Source())
			t.AppendHeader(table.Row{"Table", "Field", "Kind", "Granularities"})

			for _, tbl := range reg.Tables() {
				for _, f := range tbl.Fields {
					t.AppendRow(table.Row{tbl.Name, f.Name, f.Kind, strings.Join(f.Granularities, ", ")})
				}
				t.AppendSeparator()
			}
			t.Render()
			return nil
		},
	}
}
