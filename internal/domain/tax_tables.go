package domain

import (
	"github.com/shopspring/decimal"
)

// TaxTableConfig holds every constant the calculators need for one tax year.
// It is loaded from a YAML or TOML file, or taken from BuiltinTaxTables.
type TaxTableConfig struct {
	Metadata TableMetadata                 `yaml:"metadata" json:"metadata" toml:"metadata"`
	AMT      AMTRates                      `yaml:"amt" json:"amt" toml:"amt"`
	Statuses map[FilingStatus]StatusTable `yaml:"filing_status" json:"filing_status" toml:"filing_status"`
}

// TableMetadata describes where the table values came from
type TableMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year" toml:"tax_year"`
	Description string `yaml:"description" json:"description" toml:"description"`
	Source      string `yaml:"source,omitempty" json:"source,omitempty" toml:"source,omitempty"`
}

// AMTRates are the status-independent AMT percentages
type AMTRates struct {
	LowRatePercent      decimal.Decimal `yaml:"low_rate_percent" json:"low_rate_percent" toml:"low_rate_percent"`
	HighRatePercent     decimal.Decimal `yaml:"high_rate_percent" json:"high_rate_percent" toml:"high_rate_percent"`
	PhaseoutRatePercent decimal.Decimal `yaml:"phaseout_rate_percent" json:"phaseout_rate_percent" toml:"phaseout_rate_percent"`
}

// StatusTable contains the per-filing-status constants
type StatusTable struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction" toml:"standard_deduction"`
	Exemption         ExemptionConfig `yaml:"exemption" json:"exemption" toml:"exemption"`
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets" toml:"brackets"`
	// CapitalGains tiers are selected by ordinary income, not taxable income
	CapitalGains []TaxBracket `yaml:"capital_gains" json:"capital_gains" toml:"capital_gains"`
}

// ExemptionConfig holds the AMT exemption amount, the AMTI level where it
// starts phasing out, and the AMT base breakpoint between the two rates.
type ExemptionConfig struct {
	Amount            decimal.Decimal `yaml:"amount" json:"amount" toml:"amount"`
	PhaseoutThreshold decimal.Decimal `yaml:"phaseout_threshold" json:"phaseout_threshold" toml:"phaseout_threshold"`
	Breakpoint        decimal.Decimal `yaml:"breakpoint" json:"breakpoint" toml:"breakpoint"`
}

// TaxBracket is one (threshold, marginal rate) pair. Rates are percentages.
type TaxBracket struct {
	Threshold   decimal.Decimal `yaml:"threshold" json:"threshold" toml:"threshold"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"rate_percent" toml:"rate_percent"`
}

// Rate returns the bracket rate as a fraction
func (b TaxBracket) Rate() decimal.Decimal {
	return PercentToRate(b.RatePercent)
}

// Lookup returns the table row for a filing status
func (c *TaxTableConfig) Lookup(status FilingStatus) (StatusTable, bool) {
	if c == nil || c.Statuses == nil {
		return StatusTable{}, false
	}
	t, ok := c.Statuses[status]
	return t, ok
}

// PercentToRate converts 26 to 0.26
func PercentToRate(p decimal.Decimal) decimal.Decimal {
	return p.Div(decimal.NewFromInt(100))
}
