package calculation

import (
	"testing"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBargainElement(t *testing.T) {
	tests := []struct {
		name              string
		isos, strike, fmv string
		expected          string
	}{
		{"standard exercise", "1000", "1", "11", "10000"},
		{"fractional quantity", "2.5", "4", "10", "15"},
		{"underwater options stay negative", "100", "20", "15", "-500"},
		{"zero quantity with spread", "0", "1", "11", "0"},
		{"zero quantity underwater", "0", "50", "3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBargainElement(dec(tt.isos), dec(tt.strike), dec(tt.fmv))
			assertDecimal(t, tt.expected, got, "bargain element")
		})
	}
}

func TestAddExerciseLot(t *testing.T) {
	ledger := domain.NewExerciseLedger()

	first := AddExerciseLot(ledger, dec("1000"), dec("1"), dec("11"))
	second := AddExerciseLot(ledger, dec("500"), dec("2"), dec("4"))

	require.Equal(t, 2, ledger.Len())
	assert.NotEmpty(t, first.ID, "Should assign an ID")
	assert.NotEqual(t, first.ID, second.ID, "IDs should be unique")
	assertDecimal(t, "10000", first.BargainElement, "first lot")
	assertDecimal(t, "1000", second.BargainElement, "second lot")

	last, ok := ledger.Last()
	require.True(t, ok)
	assert.Equal(t, second.ID, last.ID, "Last should return the most recent lot")

	assertDecimal(t, "11000", TotalBargainElement(ledger), "total")
}

func TestTotalBargainElement_EmptyAndNil(t *testing.T) {
	assert.True(t, TotalBargainElement(domain.NewExerciseLedger()).IsZero())
	assert.True(t, TotalBargainElement(nil).IsZero())
}

func TestExerciseLedger_LotsReturnsCopy(t *testing.T) {
	ledger := domain.NewExerciseLedger()
	AddExerciseLot(ledger, decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.NewFromInt(2))

	lots := ledger.Lots()
	lots[0].ISOCount = decimal.NewFromInt(999)

	again := ledger.Lots()
	assertDecimal(t, "10", again[0].ISOCount, "ledger lot must not change through a copy")
}
