package calculation

import (
	"sort"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// ORDINARY TAX ASSUMPTIONS:
//
// 1. Taxable ordinary income is ordinary income less the standard deduction
//    plus short-term gains. No itemized deductions or credits.
//
// 2. Long-term gains are taxed at a single tier picked by ordinary income
//    alone (not taxable income), and the built-in tiers are the same for
//    every filing status.

// OrdinaryTaxCalculator computes regular federal income tax from the tables
type OrdinaryTaxCalculator struct {
	Tables *domain.TaxTableConfig
}

// NewOrdinaryTaxCalculator creates a calculator over the given tables
func NewOrdinaryTaxCalculator(tables *domain.TaxTableConfig) *OrdinaryTaxCalculator {
	return &OrdinaryTaxCalculator{Tables: tables}
}

// TaxableOrdinaryIncome returns income - standard deduction + short-term gains.
// The result may be negative.
func (otc *OrdinaryTaxCalculator) TaxableOrdinaryIncome(inputs domain.TaxInputs) decimal.Decimal {
	table, _ := otc.Tables.Lookup(inputs.FilingStatus)
	return inputs.OrdinaryIncome.Sub(table.StandardDeduction).Add(inputs.ShortTermGains)
}

// CalculateOrdinaryTax returns bracket tax plus long-term capital gains tax
func (otc *OrdinaryTaxCalculator) CalculateOrdinaryTax(inputs domain.TaxInputs) decimal.Decimal {
	table, _ := otc.Tables.Lookup(inputs.FilingStatus)
	bracketTax := CalculateBracketTax(table.Brackets, otc.TaxableOrdinaryIncome(inputs))
	gainsTax := CalculateCapitalGainsTax(table.CapitalGains, inputs.OrdinaryIncome, inputs.LongTermGains)
	return bracketTax.Add(gainsTax)
}

// CalculateBracketTax applies a progressive bracket table. The top bracket is
// the highest one whose threshold is strictly below taxable income; income at
// or below the first threshold owes nothing.
func CalculateBracketTax(brackets []domain.TaxBracket, taxable decimal.Decimal) decimal.Decimal {
	if len(brackets) == 0 || !taxable.GreaterThan(brackets[0].Threshold) {
		return decimal.Zero
	}

	i := topBracketIndex(brackets, taxable)
	tax := taxable.Sub(brackets[i].Threshold).Mul(brackets[i].Rate())
	for j := i - 1; j >= 0; j-- {
		width := brackets[j+1].Threshold.Sub(brackets[j].Threshold)
		tax = tax.Add(width.Mul(brackets[j].Rate()))
	}
	return tax
}

// topBracketIndex returns the highest index whose threshold is < income,
// clamped to 0.
func topBracketIndex(brackets []domain.TaxBracket, income decimal.Decimal) int {
	i := sort.Search(len(brackets), func(k int) bool {
		return brackets[k].Threshold.GreaterThanOrEqual(income)
	}) - 1
	if i < 0 {
		return 0
	}
	return i
}

// CalculateCapitalGainsTax taxes all long-term gains at the tier selected by
// ordinary income: the highest tier whose threshold is <= income.
func CalculateCapitalGainsTax(tiers []domain.TaxBracket, ordinaryIncome, longTermGains decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, tier := range tiers {
		if tier.Threshold.GreaterThan(ordinaryIncome) {
			break
		}
		rate = tier.Rate()
	}
	return longTermGains.Mul(rate)
}
