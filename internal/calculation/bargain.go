package calculation

import (
	"github.com/google/uuid"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateBargainElement returns (fmv - strike) * isoCount. Fractional counts
// are allowed because the solver probes non-integer quantities, and negative
// results (underwater options) are returned unchanged.
func CalculateBargainElement(isoCount, strikePrice, fairMarketValue decimal.Decimal) decimal.Decimal {
	return fairMarketValue.Sub(strikePrice).Mul(isoCount)
}

// NewExerciseLot builds a lot with a fresh ID and its derived bargain element
func NewExerciseLot(isoCount, strikePrice, fairMarketValue decimal.Decimal) domain.ExerciseLot {
	return domain.ExerciseLot{
		ID:              uuid.New().String(),
		ISOCount:        isoCount,
		StrikePrice:     strikePrice,
		FairMarketValue: fairMarketValue,
		BargainElement:  CalculateBargainElement(isoCount, strikePrice, fairMarketValue),
	}
}

// AddExerciseLot appends a new lot to the ledger and returns it
func AddExerciseLot(ledger *domain.ExerciseLedger, isoCount, strikePrice, fairMarketValue decimal.Decimal) domain.ExerciseLot {
	lot := NewExerciseLot(isoCount, strikePrice, fairMarketValue)
	ledger.Append(lot)
	return lot
}

// TotalBargainElement sums the bargain element of every lot in the ledger
func TotalBargainElement(ledger *domain.ExerciseLedger) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range ledger.Lots() {
		total = total.Add(lot.BargainElement)
	}
	return total
}
