package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/logging"
	"github.com/rgehrsitz/isoamt/internal/tui"
)

func newRootCmd() *cobra.Command {
	var (
		opts       tui.Options
		solverMode string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "isoamt-tui [scenario-file]",
		Short: "Interactive ISO exercise AMT calculator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if len(args) == 1 {
				if _, err := os.Stat(args[0]); err != nil {
					return fmt.Errorf("scenario file not found: %s", args[0])
				}
				opts.ScenarioPath = args[0]
			}
			if opts.TablesPath == "" {
				opts.TablesPath = os.Getenv("ISOAMT_TAX_TABLES")
			}

			switch domain.SolverMode(solverMode) {
			case domain.SolverModeLastLot, domain.SolverModeFullAMTI:
				opts.SolverMode = domain.SolverMode(solverMode)
			default:
				return fmt.Errorf("unknown solver mode %q", solverMode)
			}

			// The alternate screen owns stdout and stderr, so logs only go to a file
			opts.Logger = calculation.NopLogger{}
			if logFile != "" {
				cfg := logging.ConfigFromEnv()
				cfg.OutputPaths = []string{logFile}
				logger, err := logging.New(cfg)
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
				opts.Logger = logger.Sugar()
			}

			p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.TablesPath, "tables", "", "Tax table file (.yaml, .toml or .json)")
	cmd.Flags().StringVar(&opts.Separator, "separator", ",", "Thousands separator")
	cmd.Flags().StringVar(&solverMode, "solver-mode", string(domain.SolverModeLastLot), "Max ISO solver mode (last_lot, full_amti)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
