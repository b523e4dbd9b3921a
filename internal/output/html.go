package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/isoamt/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"qty":   FormatQuantity,
	"price": FormatPrice,
	"inc":   func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.TaxReport
		ShowMax     bool
		Assumptions []string
	}{report, report.ShowMaxISOs(), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
