package calculation

import (
	"testing"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, what string) {
	t.Helper()
	want := dec(expected)
	assert.Truef(t, want.Equal(actual), "%s: expected %s, got %s", what, want.String(), actual.String())
}

func singleInputs(income int64) domain.TaxInputs {
	return domain.TaxInputs{
		OrdinaryIncome: decimal.NewFromInt(income),
		FilingStatus:   domain.FilingSingle,
	}
}

// TestLogger records messages for assertions
type TestLogger struct {
	Debugs []string
	Warns  []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.Debugs = append(tl.Debugs, format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.Warns = append(tl.Warns, format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {}
