package domain

import (
	"github.com/shopspring/decimal"
)

// ExerciseLot is a single ISO exercise. Lots are values and are never
// modified after they are appended to a ledger.
type ExerciseLot struct {
	ID              string          `json:"id" yaml:"id"`
	ISOCount        decimal.Decimal `json:"iso_count" yaml:"iso_count"`
	StrikePrice     decimal.Decimal `json:"strike_price" yaml:"strike_price"`
	FairMarketValue decimal.Decimal `json:"fair_market_value" yaml:"fair_market_value"`
	BargainElement  decimal.Decimal `json:"bargain_element" yaml:"bargain_element"`
}

// ExerciseLedger is an append-only, ordered list of exercise lots. The last
// lot is the one the max-ISO solver varies.
type ExerciseLedger struct {
	lots []ExerciseLot
}

// NewExerciseLedger creates a ledger pre-populated with lots, in order
func NewExerciseLedger(lots ...ExerciseLot) *ExerciseLedger {
	l := &ExerciseLedger{}
	for _, lot := range lots {
		l.Append(lot)
	}
	return l
}

// Append adds a lot to the end of the ledger
func (l *ExerciseLedger) Append(lot ExerciseLot) {
	l.lots = append(l.lots, lot)
}

// Lots returns a copy of the lots in insertion order
func (l *ExerciseLedger) Lots() []ExerciseLot {
	if l == nil {
		return nil
	}
	out := make([]ExerciseLot, len(l.lots))
	copy(out, l.lots)
	return out
}

// Len returns the number of lots; a nil ledger is empty
func (l *ExerciseLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.lots)
}

// Last returns the most recently appended lot
func (l *ExerciseLedger) Last() (ExerciseLot, bool) {
	if l.Len() == 0 {
		return ExerciseLot{}, false
	}
	return l.lots[len(l.lots)-1], true
}
