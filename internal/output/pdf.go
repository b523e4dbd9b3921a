package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/isoamt/internal/domain"
)

// PDFFormatter renders a one-page A4 summary.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfMargin       = 15.0
	pdfContentWidth = 210.0 - 2*pdfMargin
)

func (p PDFFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle("ISO Exercise AMT Estimate", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "ISO Exercise AMT Estimate", "", 1, "C", false, 0, "")
	if report.Metadata.TaxYear != 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Tax tables: %d %s", report.Metadata.TaxYear, report.Metadata.Description), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	in := report.Inputs
	pdfSection(pdf, "Inputs", [][2]string{
		{"Filing status", in.FilingStatus.Label()},
		{"Ordinary income", FormatCurrency(in.OrdinaryIncome)},
		{"Long-term gains", FormatCurrency(in.LongTermGains)},
		{"Short-term gains", FormatCurrency(in.ShortTermGains)},
	})

	pdfLotTable(pdf, report.Lots)

	out := report.Outputs
	pdfSection(pdf, "Results", [][2]string{
		{"Total bargain element", FormatCurrency(out.TotalBargainElement)},
		{"AMTI", FormatCurrency(out.AMTI)},
		{"AMT exemption", FormatCurrency(out.AMTExemption)},
		{"AMT base", FormatCurrency(out.AMTBase)},
		{"AMT", FormatCurrency(out.AMT)},
		{"Ordinary tax", FormatCurrency(out.OrdinaryTax)},
		{"Payable tax", FormatCurrency(out.PayableTax)},
	})

	if report.ShowMaxISOs() {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(170, 51, 51)
		pdf.MultiCell(pdfContentWidth, 6, fmt.Sprintf("AMT exceeds ordinary tax. Max ISOs for the last exercise before AMT applies: %s",
			FormatQuantity(report.Estimate.ISOs)), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 7, "Assumptions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, a := range DefaultAssumptions {
		pdf.MultiCell(pdfContentWidth, 5, "- "+a, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfSection(pdf *fpdf.Fpdf, title string, rows [][2]string) {
	labelWidth := pdfContentWidth * 0.6

	pdf.SetFillColor(245, 247, 250)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, title, "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(50, 50, 50)
	for _, row := range rows {
		pdf.CellFormat(labelWidth, 7, row[0], "LB", 0, "L", false, 0, "")
		pdf.CellFormat(pdfContentWidth-labelWidth, 7, row[1], "RB", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func pdfLotTable(pdf *fpdf.Fpdf, lots []domain.ExerciseLot) {
	pdf.SetFillColor(245, 247, 250)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, "Exercises", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	if len(lots) == 0 {
		pdf.CellFormat(pdfContentWidth, 7, "No exercises recorded", "LRB", 1, "L", false, 0, "")
		pdf.Ln(6)
		return
	}

	headers := []string{"#", "ISOs", "Strike", "FMV", "Bargain element"}
	widths := []float64{12, 40, 38, 38, pdfContentWidth - 128}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, lot := range lots {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			FormatQuantity(lot.ISOCount),
			FormatPrice(lot.StrikePrice),
			FormatPrice(lot.FairMarketValue),
			FormatCurrency(lot.BargainElement),
		}
		for j, cell := range cells {
			align := "R"
			if j == 0 {
				align = "C"
			}
			pdf.CellFormat(widths[j], 7, strings.TrimSpace(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}
