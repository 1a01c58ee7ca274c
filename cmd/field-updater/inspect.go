package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"field-updater/internal/diagnostic"
	"field-updater/internal/gen"
	"field-updater/internal/selector"
	"field-updater/internal/ui"
)

func (a *app) newInspectCmd() *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "inspect [packages...]",
		Short: "Show the eligible fields and canonical names of records",
		Example: `  field-updater inspect
  field-updater inspect ./models --type Account`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			_, records, err := loadRecords(args, types)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				ui.Warning(errOut, "%s", noRecordsHint())
				return nil
			}

			failed := 0

			for _, rec := range records {
				fmt.Fprintln(out, ui.Header(rec.Name(), rec.ID.PkgPath+" "+rec.Pos))

				var diags diagnostic.Diagnostics

				fields, err := gen.PlanFields(rec, selector.Options{
					Group:       cfg.Marker.Group,
					Diagnostics: &diags,
				})
				if err != nil {
					ui.Error(out, "%v", err)
					fmt.Fprintln(out)

					failed++

					continue
				}

				rows := make([][]string, 0, len(fields))
				for _, f := range fields {
					visibility := "exported"
					if !f.Exported {
						visibility = "unexported"
					}

					rows = append(rows, []string{f.Name, f.LookupKey, f.TypeRef, f.Type, visibility})
				}

				if len(rows) > 0 {
					table, err := ui.Table([]string{"Field", "Lookup key", "Type ref", "Value type", "Visibility"}, rows)
					if err != nil {
						return err
					}

					fmt.Fprint(out, table)
				}

				ui.Diagnostics(out, diags, true)
				fmt.Fprintln(out)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d record(s) cannot be generated", failed, len(records))
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "record type names to inspect (repeatable)")

	return cmd
}
