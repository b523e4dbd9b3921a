package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/isoamt/internal/domain"
)

// CSVFormatter writes one row per exercise followed by a summary row.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Row", "ISOs", "Strike", "FMV", "BargainElement", "AMTI", "AMTExemption", "AMTBase", "AMT", "OrdinaryTax", "PayableTax", "MaxISOs"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, lot := range report.Lots {
		row := []string{
			"exercise",
			lot.ISOCount.String(),
			lot.StrikePrice.StringFixed(2),
			lot.FairMarketValue.StringFixed(2),
			lot.BargainElement.StringFixed(2),
			"", "", "", "", "", "", "",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	out := report.Outputs
	maxISOs := ""
	if report.ShowMaxISOs() {
		maxISOs = report.Estimate.ISOs.StringFixed(2)
	}
	summary := []string{
		"total",
		"", "", "",
		out.TotalBargainElement.StringFixed(2),
		out.AMTI.StringFixed(2),
		out.AMTExemption.StringFixed(2),
		out.AMTBase.StringFixed(2),
		out.AMT.StringFixed(2),
		out.OrdinaryTax.StringFixed(2),
		out.PayableTax.StringFixed(2),
		maxISOs,
	}
	if err := w.Write(summary); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
