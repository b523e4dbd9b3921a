package domain

import (
	"github.com/shopspring/decimal"
)

// BuiltinTaxTables returns the table compiled into the binary. The brackets,
// standard deductions and exemption amounts match the IRS 2019 figures; the
// long-term capital gains tiers use the single-filer breakpoints for every
// status.
//
// A fresh value is built on every call so callers may modify their copy.
func BuiltinTaxTables() *TaxTableConfig {
	capitalGains := func() []TaxBracket {
		return []TaxBracket{
			bracket(0, 0),
			bracket(39375, 15),
			bracket(434550, 20),
		}
	}

	return &TaxTableConfig{
		Metadata: TableMetadata{
			TaxYear:     2019,
			Description: "Built-in federal ordinary income and AMT tables",
			Source:      "IRS Rev. Proc. 2018-57",
		},
		AMT: AMTRates{
			LowRatePercent:      decimal.NewFromInt(26),
			HighRatePercent:     decimal.NewFromInt(28),
			PhaseoutRatePercent: decimal.NewFromInt(25),
		},
		Statuses: map[FilingStatus]StatusTable{
			FilingSingle: {
				StandardDeduction: decimal.NewFromInt(12200),
				Exemption: ExemptionConfig{
					Amount:            decimal.NewFromInt(71700),
					PhaseoutThreshold: decimal.NewFromInt(510300),
					Breakpoint:        decimal.NewFromInt(194800),
				},
				Brackets: []TaxBracket{
					bracket(0, 10),
					bracket(9700, 12),
					bracket(39475, 22),
					bracket(84200, 24),
					bracket(160725, 32),
					bracket(204100, 35),
					bracket(510300, 37),
				},
				CapitalGains: capitalGains(),
			},
			FilingMarried: {
				StandardDeduction: decimal.NewFromInt(24400),
				Exemption: ExemptionConfig{
					Amount:            decimal.NewFromInt(111700),
					PhaseoutThreshold: decimal.NewFromInt(1020600),
					Breakpoint:        decimal.NewFromInt(194800),
				},
				Brackets: []TaxBracket{
					bracket(0, 10),
					bracket(19400, 12),
					bracket(78950, 22),
					bracket(168400, 24),
					bracket(321450, 32),
					bracket(408200, 35),
					bracket(612350, 37),
				},
				CapitalGains: capitalGains(),
			},
			FilingMarriedFilingSeparately: {
				StandardDeduction: decimal.NewFromInt(12200),
				Exemption: ExemptionConfig{
					Amount:            decimal.NewFromInt(54700),
					PhaseoutThreshold: decimal.NewFromInt(500000),
					Breakpoint:        decimal.NewFromInt(95750),
				},
				Brackets: []TaxBracket{
					bracket(0, 10),
					bracket(9525, 12),
					bracket(38700, 22),
					bracket(82500, 24),
					bracket(157500, 32),
					bracket(200000, 35),
					bracket(300000, 37),
				},
				CapitalGains: capitalGains(),
			},
		},
	}
}

func bracket(threshold, ratePercent int64) TaxBracket {
	return TaxBracket{
		Threshold:   decimal.NewFromInt(threshold),
		RatePercent: decimal.NewFromInt(ratePercent),
	}
}
