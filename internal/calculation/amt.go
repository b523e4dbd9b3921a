package calculation

import (
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// AMTCalculator computes the AMT exemption and the two-tier AMT for one
// filing status
type AMTCalculator struct {
	Exemption domain.ExemptionConfig
	Rates     domain.AMTRates
}

// NewAMTCalculator creates an AMT calculator for a filing status. An unknown
// status yields a zero exemption and breakpoint.
func NewAMTCalculator(tables *domain.TaxTableConfig, status domain.FilingStatus) *AMTCalculator {
	table, _ := tables.Lookup(status)
	var rates domain.AMTRates
	if tables != nil {
		rates = tables.AMT
	}
	return &AMTCalculator{Exemption: table.Exemption, Rates: rates}
}

// CalculateExemption returns amount - phaseoutRate * max(0, amti - threshold),
// floored at zero. At exactly the threshold no phase-out applies.
func (ac *AMTCalculator) CalculateExemption(amti decimal.Decimal) decimal.Decimal {
	excess := decimal.Max(decimal.Zero, amti.Sub(ac.Exemption.PhaseoutThreshold))
	reduction := excess.Mul(domain.PercentToRate(ac.Rates.PhaseoutRatePercent))
	return decimal.Max(decimal.Zero, ac.Exemption.Amount.Sub(reduction))
}

// CalculateAMT applies the low rate up to the breakpoint and the high rate
// above it. The formula is continuous at the breakpoint.
func (ac *AMTCalculator) CalculateAMT(amtBase decimal.Decimal) decimal.Decimal {
	low := domain.PercentToRate(ac.Rates.LowRatePercent)
	breakpoint := ac.Exemption.Breakpoint
	if amtBase.GreaterThan(breakpoint) {
		high := domain.PercentToRate(ac.Rates.HighRatePercent)
		return breakpoint.Mul(low).Add(amtBase.Sub(breakpoint).Mul(high))
	}
	return amtBase.Mul(low)
}

// CalculateFromAMTI runs exemption, base and AMT for a given AMTI
func (ac *AMTCalculator) CalculateFromAMTI(amti decimal.Decimal) (exemption, base, amt decimal.Decimal) {
	exemption = ac.CalculateExemption(amti)
	base = amti.Sub(exemption)
	amt = ac.CalculateAMT(base)
	return exemption, base, amt
}
