package calculation

import (
	"testing"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAMTExemption_FlatUpToThreshold(t *testing.T) {
	tables := domain.BuiltinTaxTables()

	for _, status := range domain.FilingStatuses() {
		calc := NewAMTCalculator(tables, status)
		amount := calc.Exemption.Amount
		threshold := calc.Exemption.PhaseoutThreshold

		for _, amti := range []decimal.Decimal{decimal.Zero, dec("-5000"), threshold.Div(decimal.NewFromInt(2)), threshold} {
			got := calc.CalculateExemption(amti)
			assert.Truef(t, got.Equal(amount), "%s: exemption at amti %s should be %s, got %s",
				status, amti.String(), amount.String(), got.String())
		}
	}
}

func TestAMTExemption_PhaseOut(t *testing.T) {
	calc := NewAMTCalculator(domain.BuiltinTaxTables(), domain.FilingSingle)

	// 25 cents per dollar above 510,300
	assertDecimal(t, "71450", calc.CalculateExemption(dec("511300")), "one thousand over")
	assertDecimal(t, "0", calc.CalculateExemption(dec("797100")), "fully phased out")
	assertDecimal(t, "0", calc.CalculateExemption(dec("50000000")), "far above phase-out")
}

func TestAMTExemption_StrictlyDecreasingThenZero(t *testing.T) {
	calc := NewAMTCalculator(domain.BuiltinTaxTables(), domain.FilingMarried)
	threshold := calc.Exemption.PhaseoutThreshold

	prev := calc.CalculateExemption(threshold)
	for step := int64(1000); step <= 600000; step += 1000 {
		cur := calc.CalculateExemption(threshold.Add(decimal.NewFromInt(step)))
		assert.False(t, cur.IsNegative(), "exemption must never be negative")
		if prev.IsPositive() {
			assert.Truef(t, cur.LessThan(prev), "exemption should decrease at +%d", step)
		} else {
			assert.True(t, cur.IsZero())
		}
		prev = cur
	}
}

func TestAMT_ContinuousAtBreakpoint(t *testing.T) {
	for _, status := range domain.FilingStatuses() {
		calc := NewAMTCalculator(domain.BuiltinTaxTables(), status)
		bp := calc.Exemption.Breakpoint
		atBreak := bp.Mul(dec("0.26"))

		epsilon := dec("0.0001")
		below := calc.CalculateAMT(bp.Sub(epsilon))
		at := calc.CalculateAMT(bp)
		above := calc.CalculateAMT(bp.Add(epsilon))

		assert.Truef(t, at.Equal(atBreak), "%s: AMT at breakpoint %s", status, at.String())
		assert.Truef(t, at.Sub(below).Abs().LessThanOrEqual(epsilon), "%s: jump below breakpoint", status)
		assert.Truef(t, above.Sub(at).Abs().LessThanOrEqual(epsilon), "%s: jump above breakpoint", status)
	}
}

func TestAMT_TwoTiers(t *testing.T) {
	calc := NewAMTCalculator(domain.BuiltinTaxTables(), domain.FilingSingle)

	assertDecimal(t, "26000", calc.CalculateAMT(dec("100000")), "low tier")
	// 194,800 * 26% + 5,200 * 28%
	assertDecimal(t, "52104", calc.CalculateAMT(dec("200000")), "high tier")
	assertDecimal(t, "0", calc.CalculateAMT(decimal.Zero), "zero base")
	assertDecimal(t, "-2600", calc.CalculateAMT(dec("-10000")), "negative base is not clamped")
}

func TestAMTCalculator_UnknownStatusAndNilTables(t *testing.T) {
	calc := NewAMTCalculator(nil, domain.FilingSingle)

	assertDecimal(t, "0", calc.CalculateExemption(dec("100000")), "nil tables exemption")
	assertDecimal(t, "0", calc.CalculateAMT(dec("100000")), "nil tables amt")
}
