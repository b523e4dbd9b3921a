package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// TableFormat is the on-disk encoding of a tax table file
type TableFormat string

const (
	TableFormatYAML TableFormat = "yaml"
	TableFormatTOML TableFormat = "toml"
	TableFormatJSON TableFormat = "json"
)

// TableFormatFromPath picks the encoding from the file extension; anything
// unrecognised is read as YAML
func TableFormatFromPath(path string) TableFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TableFormatTOML
	case ".json":
		return TableFormatJSON
	default:
		return TableFormatYAML
	}
}

// LoadTaxTablesFromFile loads and validates a tax table file
func (ip *InputParser) LoadTaxTablesFromFile(filename string) (*domain.TaxTableConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax tables %s: %w", filename, err)
	}
	return ip.ParseTaxTables(data, TableFormatFromPath(filename))
}

// ParseTaxTables decodes table data, fills missing AMT rates and validates
func (ip *InputParser) ParseTaxTables(data []byte, format TableFormat) (*domain.TaxTableConfig, error) {
	var tables domain.TaxTableConfig

	switch format {
	case TableFormatTOML:
		if _, err := toml.Decode(string(data), &tables); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case TableFormatJSON:
		if err := json.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	applyTableDefaults(&tables)

	if err := ip.ValidateTaxTables(&tables); err != nil {
		return nil, fmt.Errorf("tax table validation failed: %w", err)
	}
	return &tables, nil
}

// applyTableDefaults fills the AMT rates from the built-in table when a file
// leaves the whole section out
func applyTableDefaults(tables *domain.TaxTableConfig) {
	amt := tables.AMT
	if amt.LowRatePercent.IsZero() && amt.HighRatePercent.IsZero() && amt.PhaseoutRatePercent.IsZero() {
		tables.AMT = domain.BuiltinTaxTables().AMT
	}
}

// ValidateTaxTables checks every status row for ordering and sign errors
func (ip *InputParser) ValidateTaxTables(tables *domain.TaxTableConfig) error {
	if len(tables.Statuses) == 0 {
		return fmt.Errorf("at least one filing status table is required")
	}
	if err := validateAMTRates(tables.AMT); err != nil {
		return fmt.Errorf("amt: %w", err)
	}

	for status, table := range tables.Statuses {
		if !status.IsValid() {
			return fmt.Errorf("unknown filing status %q", status)
		}
		if err := validateStatusTable(table); err != nil {
			return fmt.Errorf("filing status %s: %w", status, err)
		}
	}
	return nil
}

func validateAMTRates(rates domain.AMTRates) error {
	if rates.LowRatePercent.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("low rate must be positive")
	}
	if rates.HighRatePercent.LessThan(rates.LowRatePercent) {
		return fmt.Errorf("high rate cannot be less than low rate")
	}
	if rates.PhaseoutRatePercent.LessThan(decimal.Zero) || rates.PhaseoutRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("phase-out rate must be between 0 and 100")
	}
	return nil
}

func validateStatusTable(table domain.StatusTable) error {
	if table.StandardDeduction.LessThan(decimal.Zero) {
		return fmt.Errorf("standard deduction cannot be negative")
	}
	ex := table.Exemption
	if ex.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("exemption amount cannot be negative")
	}
	if ex.PhaseoutThreshold.LessThan(decimal.Zero) {
		return fmt.Errorf("exemption phase-out threshold cannot be negative")
	}
	if ex.Breakpoint.LessThan(decimal.Zero) {
		return fmt.Errorf("AMT breakpoint cannot be negative")
	}

	if len(table.Brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	if !table.Brackets[0].Threshold.IsZero() {
		return fmt.Errorf("first bracket threshold must be 0, got %s", table.Brackets[0].Threshold)
	}
	if err := validateAscending("bracket", table.Brackets, true); err != nil {
		return err
	}
	if err := validateAscending("capital gains tier", table.CapitalGains, false); err != nil {
		return err
	}
	return nil
}

// validateAscending requires strictly increasing thresholds, rates within
// 0..100, and optionally strictly increasing rates
func validateAscending(kind string, brackets []domain.TaxBracket, strictRates bool) error {
	hundred := decimal.NewFromInt(100)
	for i, b := range brackets {
		if b.RatePercent.LessThan(decimal.Zero) || b.RatePercent.GreaterThan(hundred) {
			return fmt.Errorf("%s %d: rate must be between 0 and 100", kind, i)
		}
		if b.Threshold.LessThan(decimal.Zero) {
			return fmt.Errorf("%s %d: threshold cannot be negative", kind, i)
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if !b.Threshold.GreaterThan(prev.Threshold) {
			return fmt.Errorf("%s %d: threshold %s must be greater than %s", kind, i, b.Threshold, prev.Threshold)
		}
		if strictRates && !b.RatePercent.GreaterThan(prev.RatePercent) {
			return fmt.Errorf("%s %d: rate %s%% must be greater than %s%%", kind, i, b.RatePercent, prev.RatePercent)
		}
	}
	return nil
}

// WriteTaxTables encodes tables in the requested format
func WriteTaxTables(w io.Writer, tables *domain.TaxTableConfig, format TableFormat) error {
	switch format {
	case TableFormatTOML:
		return toml.NewEncoder(w).Encode(tables)
	case TableFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tables)
	case TableFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tables); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported table format: %s", format)
	}
}
