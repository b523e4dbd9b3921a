package domain

import (
	"github.com/shopspring/decimal"
)

// TaxInputs is the snapshot of user-entered values for one calculation
type TaxInputs struct {
	OrdinaryIncome decimal.Decimal `json:"ordinary_income" yaml:"ordinary_income"`
	LongTermGains  decimal.Decimal `json:"long_term_gains" yaml:"long_term_gains"`
	ShortTermGains decimal.Decimal `json:"short_term_gains" yaml:"short_term_gains"`
	FilingStatus   FilingStatus    `json:"filing_status" yaml:"filing_status"`
}

// TaxOutputs is recomputed wholesale on every calculation
type TaxOutputs struct {
	TotalBargainElement decimal.Decimal `json:"total_bargain_element" yaml:"total_bargain_element"`
	AMTI                decimal.Decimal `json:"amti" yaml:"amti"`
	AMTExemption        decimal.Decimal `json:"amt_exemption" yaml:"amt_exemption"`
	AMTBase             decimal.Decimal `json:"amt_base" yaml:"amt_base"`
	AMT                 decimal.Decimal `json:"amt" yaml:"amt"`
	OrdinaryTax         decimal.Decimal `json:"ordinary_tax" yaml:"ordinary_tax"`
	PayableTax          decimal.Decimal `json:"payable_tax" yaml:"payable_tax"`

	// MaxISOs is set only when the ledger has at least one lot
	MaxISOs *decimal.Decimal `json:"max_isos,omitempty" yaml:"max_isos,omitempty"`
}

// AMTExceedsOrdinary reports whether the exercise pushed the taxpayer into AMT
func (o TaxOutputs) AMTExceedsOrdinary() bool {
	return o.AMT.GreaterThan(o.OrdinaryTax)
}

// SolverMode selects which AMTI the max-ISO solver recomputes at each candidate
type SolverMode string

const (
	// SolverModeLastLot recomputes AMTI from ordinary income plus the probed
	// lot only, ignoring gains and earlier lots.
	SolverModeLastLot SolverMode = "last_lot"
	// SolverModeFullAMTI recomputes AMTI from all income, gains and every lot,
	// with the last lot's quantity replaced by the candidate.
	SolverModeFullAMTI SolverMode = "full_amti"
)

// MaxISOEstimate is the result of the break-even bisection
type MaxISOEstimate struct {
	ISOs        decimal.Decimal `json:"isos" yaml:"isos"`
	Iterations  int             `json:"iterations" yaml:"iterations"`
	Converged   bool            `json:"converged" yaml:"converged"`
	Discrepancy decimal.Decimal `json:"discrepancy" yaml:"discrepancy"`
	Mode        SolverMode      `json:"mode" yaml:"mode"`
}

// TaxReport bundles one recompute for presentation
type TaxReport struct {
	Metadata TableMetadata   `json:"tables" yaml:"tables"`
	Inputs   TaxInputs       `json:"inputs" yaml:"inputs"`
	Lots     []ExerciseLot   `json:"exercises" yaml:"exercises"`
	Outputs  TaxOutputs      `json:"outputs" yaml:"outputs"`
	Estimate *MaxISOEstimate `json:"max_iso_estimate,omitempty" yaml:"max_iso_estimate,omitempty"`
}

// ShowMaxISOs reports whether a max-ISO figure is meaningful for display:
// only while AMT exceeds ordinary tax.
func (r *TaxReport) ShowMaxISOs() bool {
	return r.Estimate != nil && r.Outputs.AMTExceedsOrdinary()
}
