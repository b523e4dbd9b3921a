package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Formatter renders a tax report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.TaxReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.TaxReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.TaxReport) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{}

// aliases map alternate names onto registered formatters
var aliases = map[string]string{
	"text":    "console",
	"verbose": "console-verbose",
	"yml":     "yaml",
	"htm":     "html",
}

// Register adds a formatter to the registry, replacing any with the same name
func Register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	Register(ConsoleFormatter{})
	Register(ConsoleFormatter{Verbose: true})
	Register(CSVFormatter{})
	Register(HTMLFormatter{})
	Register(PDFFormatter{})
	Register(FormatterFunc{ID: "json", F: formatJSON})
	Register(FormatterFunc{ID: "yaml", F: formatYAML})
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormatterNames lists registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternate names
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateReport formats a report and writes it to w
func GenerateReport(w io.Writer, report *domain.TaxReport, format string) error {
	formatter := GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", formatter.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteReportFile formats a report straight to a file
func WriteReportFile(path string, report *domain.TaxReport, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return GenerateReport(f, report, format)
}

func formatJSON(report *domain.TaxReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func formatYAML(report *domain.TaxReport) ([]byte, error) {
	return yaml.Marshal(report)
}

// FormatCurrency formats a decimal as whole dollars
func FormatCurrency(amount decimal.Decimal) string {
	return numfmt.FormatCurrency(amount)
}

// FormatQuantity formats an ISO count with thousands separators
func FormatQuantity(amount decimal.Decimal) string {
	return numfmt.Format(amount, ",")
}

// FormatPrice keeps cents for per-share prices
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
