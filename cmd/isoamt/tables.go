package main

import (
	"fmt"

	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the active tax tables",
		Long: `Print the active tax tables. The output can be edited and passed back
with --tables to model a different tax year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tf := config.TableFormat(format)
			switch tf {
			case config.TableFormatYAML, config.TableFormatTOML, config.TableFormatJSON:
			default:
				return fmt.Errorf("unsupported table format %q (expected yaml, toml or json)", format)
			}

			tables, err := a.loadTables()
			if err != nil {
				return err
			}
			return config.WriteTaxTables(cmd.OutOrStdout(), tables, tf)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, toml, json)")
	return cmd
}
