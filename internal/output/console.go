package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/domain"
)

// ConsoleFormatter renders the plain-text summary printed by the CLI.
type ConsoleFormatter struct {
	// Verbose adds the modeling assumptions and solver diagnostics
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	in := report.Inputs
	out := report.Outputs

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, "ISO EXERCISE AMT ESTIMATE")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if report.Metadata.TaxYear != 0 {
		fmt.Fprintf(&buf, "Tax tables: %d %s\n", report.Metadata.TaxYear, report.Metadata.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUTS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Filing status:        %s\n", in.FilingStatus.Label())
	fmt.Fprintf(&buf, "Ordinary income:      %s\n", FormatCurrency(in.OrdinaryIncome))
	fmt.Fprintf(&buf, "Long-term gains:      %s\n", FormatCurrency(in.LongTermGains))
	fmt.Fprintf(&buf, "Short-term gains:     %s\n", FormatCurrency(in.ShortTermGains))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "EXERCISES")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if len(report.Lots) == 0 {
		fmt.Fprintln(&buf, "(none)")
	} else {
		fmt.Fprintf(&buf, "%-4s %12s %10s %10s %14s\n", "#", "ISOs", "Strike", "FMV", "Bargain")
		for i, lot := range report.Lots {
			fmt.Fprintf(&buf, "%-4d %12s %10s %10s %14s\n", i+1,
				FormatQuantity(lot.ISOCount), FormatPrice(lot.StrikePrice),
				FormatPrice(lot.FairMarketValue), FormatCurrency(lot.BargainElement))
		}
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RESULTS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Total bargain element: %s\n", FormatCurrency(out.TotalBargainElement))
	fmt.Fprintf(&buf, "AMTI:                  %s\n", FormatCurrency(out.AMTI))
	fmt.Fprintf(&buf, "AMT exemption:         %s\n", FormatCurrency(out.AMTExemption))
	fmt.Fprintf(&buf, "AMT base:              %s\n", FormatCurrency(out.AMTBase))
	fmt.Fprintf(&buf, "AMT:                   %s\n", FormatCurrency(out.AMT))
	fmt.Fprintf(&buf, "Ordinary tax:          %s\n", FormatCurrency(out.OrdinaryTax))
	fmt.Fprintf(&buf, "Payable tax:           %s\n", FormatCurrency(out.PayableTax))

	if report.ShowMaxISOs() {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "AMT exceeds ordinary tax. Max ISOs for the last exercise before AMT applies: %s\n",
			FormatQuantity(report.Estimate.ISOs))
		if !report.Estimate.Converged {
			fmt.Fprintf(&buf, "Warning: estimate did not converge after %d iterations (off by %s)\n",
				report.Estimate.Iterations, FormatCurrency(report.Estimate.Discrepancy))
		}
	}

	if c.Verbose {
		if report.Estimate != nil {
			fmt.Fprintln(&buf)
			fmt.Fprintln(&buf, "SOLVER")
			fmt.Fprintln(&buf, strings.Repeat("-", 40))
			fmt.Fprintf(&buf, "Mode:        %s\n", report.Estimate.Mode)
			fmt.Fprintf(&buf, "Iterations:  %d\n", report.Estimate.Iterations)
			fmt.Fprintf(&buf, "Converged:   %t\n", report.Estimate.Converged)
			fmt.Fprintf(&buf, "Candidate:   %s\n", FormatQuantity(report.Estimate.ISOs))
		}
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	return buf.Bytes(), nil
}
