package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const envTaxTables = "ISOAMT_TAX_TABLES"

// app carries state shared by every subcommand of one command tree
type app struct {
	tablesPath string
	logLevel   string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "isoamt",
		Short: "ISO exercise AMT estimator",
		Long: `Estimate the alternative minimum tax triggered by exercising incentive
stock options, compare it against regular income tax, and find how many
ISOs can be exercised before AMT applies.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.tablesPath, "tables", "", "Tax table file (.yaml, .toml or .json); defaults to $"+envTaxTables+" or the built-in 2019 table")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.EnvLogLevel)

	rootCmd.AddCommand(newCalculateCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newTablesCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// setup loads .env, then builds the logger and resolves defaults from the environment
func (a *app) setup(cmd *cobra.Command) error {
	envErr := godotenv.Load()

	cfg := logging.ConfigFromEnv()
	if a.logLevel != "" {
		cfg.Level = a.logLevel
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	if envErr != nil {
		a.logger.Debug("no .env file loaded", zap.Error(envErr))
	}

	if !cmd.Flags().Changed("tables") && a.tablesPath == "" {
		a.tablesPath = os.Getenv(envTaxTables)
	}
	return nil
}

// loadTables returns the configured tables or the built-in set
func (a *app) loadTables() (*domain.TaxTableConfig, error) {
	if a.tablesPath == "" {
		return domain.BuiltinTaxTables(), nil
	}
	tables, err := config.NewInputParser().LoadTaxTablesFromFile(a.tablesPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded tax tables", zap.String("path", a.tablesPath), zap.Int("tax_year", tables.Metadata.TaxYear))
	return tables, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "isoamt %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
