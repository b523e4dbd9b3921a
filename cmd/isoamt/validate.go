package main

import (
	"fmt"

	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file and the configured tax tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			tables, err := a.loadTables()
			if err != nil {
				return err
			}
			source := "built-in"
			if a.tablesPath != "" {
				source = a.tablesPath
			}
			fmt.Fprintf(out, "Tax tables OK: %s (tax year %d)\n", source, tables.Metadata.TaxYear)

			if len(args) == 0 {
				return nil
			}
			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			name := scenario.Name
			if name == "" {
				name = args[0]
			}
			fmt.Fprintf(out, "Scenario OK: %s (%d exercises)\n", name, len(scenario.Exercises))
			return nil
		},
	}
}
