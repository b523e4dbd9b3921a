package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type calculateFlags struct {
	income     string
	ltcg       string
	stcg       string
	status     string
	exercises  []string
	format     string
	solverMode string
	outputPath string
}

func newCalculateCmd(a *app) *cobra.Command {
	var f calculateFlags

	cmd := &cobra.Command{
		Use:   "calculate [scenario-file]",
		Short: "Calculate ordinary tax, AMT and the max ISOs before AMT applies",
		Long: `Calculate ordinary tax and AMT for a scenario file and/or flags.
Flags override values read from the file. Exercises given with --exercise are
appended after any exercises in the file.

Examples:
  isoamt calculate --income 100000 --exercise 10000@1:11
  isoamt calculate scenario.yaml --format html --output report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := buildScenario(cmd, args, &f)
			if err != nil {
				return err
			}
			return a.runCalculate(cmd, scenario, &f)
		},
	}

	cmd.Flags().StringVar(&f.income, "income", "", "Ordinary income (e.g. 100,000)")
	cmd.Flags().StringVar(&f.ltcg, "ltcg", "", "Long-term capital gains")
	cmd.Flags().StringVar(&f.stcg, "stcg", "", "Short-term capital gains")
	cmd.Flags().StringVar(&f.status, "status", "", "Filing status (single, married, married_filing_separately)")
	cmd.Flags().StringArrayVar(&f.exercises, "exercise", nil, "ISO exercise as ISOS@STRIKE:FMV; repeatable")
	cmd.Flags().StringVarP(&f.format, "format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVar(&f.solverMode, "solver-mode", "", "Max ISO solver mode (last_lot, full_amti)")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	return cmd
}

// buildScenario merges an optional scenario file with command-line overrides
func buildScenario(cmd *cobra.Command, args []string, f *calculateFlags) (*config.Scenario, error) {
	parser := config.NewInputParser()
	scenario := &config.Scenario{}
	if len(args) == 1 {
		loaded, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		scenario = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("income") {
		scenario.OrdinaryIncome = numfmt.NewAmount(numfmt.Parse(f.income))
	}
	if flags.Changed("ltcg") {
		scenario.LongTermGains = numfmt.NewAmount(numfmt.Parse(f.ltcg))
	}
	if flags.Changed("stcg") {
		scenario.ShortTermGains = numfmt.NewAmount(numfmt.Parse(f.stcg))
	}
	if flags.Changed("status") {
		scenario.FilingStatus = f.status
	}
	if flags.Changed("solver-mode") {
		scenario.SolverMode = f.solverMode
	}
	for _, raw := range f.exercises {
		isos, strike, fmv, err := parseExerciseFlag(raw)
		if err != nil {
			return nil, err
		}
		scenario.AddExercise(isos, strike, fmv)
	}

	if err := parser.ValidateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// parseExerciseFlag reads ISOS@STRIKE:FMV. Grouping separators are allowed
// in the quantity.
func parseExerciseFlag(raw string) (isos, strike, fmv decimal.Decimal, err error) {
	qty, prices, ok := strings.Cut(raw, "@")
	if !ok {
		return isos, strike, fmv, fmt.Errorf("invalid exercise %q (expected ISOS@STRIKE:FMV)", raw)
	}
	strikeText, fmvText, ok := strings.Cut(prices, ":")
	if !ok {
		return isos, strike, fmv, fmt.Errorf("invalid exercise %q (expected ISOS@STRIKE:FMV)", raw)
	}

	if isos, err = decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(qty), ",", "")); err != nil {
		return isos, strike, fmv, fmt.Errorf("invalid ISO quantity in %q: %w", raw, err)
	}
	if strike, err = decimal.NewFromString(strings.TrimSpace(strikeText)); err != nil {
		return isos, strike, fmv, fmt.Errorf("invalid strike price in %q: %w", raw, err)
	}
	if fmv, err = decimal.NewFromString(strings.TrimSpace(fmvText)); err != nil {
		return isos, strike, fmv, fmt.Errorf("invalid FMV in %q: %w", raw, err)
	}
	return isos, strike, fmv, nil
}

func (a *app) runCalculate(cmd *cobra.Command, scenario *config.Scenario, f *calculateFlags) error {
	if output.GetFormatterByName(f.format) == nil {
		return fmt.Errorf("unknown format %q (available: %s)", f.format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	tables, err := a.loadTables()
	if err != nil {
		return err
	}
	inputs, err := scenario.Inputs()
	if err != nil {
		return err
	}
	mode, err := scenario.Mode()
	if err != nil {
		return err
	}

	engine := calculation.NewTaxEngineWithOptions(tables, calculation.SolverOptions{Mode: mode})
	engine.SetLogger(a.logger.Sugar())

	report := engine.Recompute(inputs, scenario.Ledger())
	a.logger.Debug("calculated scenario",
		zap.String("status", string(inputs.FilingStatus)),
		zap.Int("exercises", len(report.Lots)),
		zap.String("amt", report.Outputs.AMT.String()),
		zap.String("ordinary_tax", report.Outputs.OrdinaryTax.String()))

	if f.outputPath != "" {
		if err := output.WriteReportFile(f.outputPath, &report, f.format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f.outputPath)
		return nil
	}
	return output.GenerateReport(cmd.OutOrStdout(), &report, f.format)
}
