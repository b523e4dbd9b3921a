package calculation

import (
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxEngine orchestrates the ordinary tax, AMT and max-ISO calculations. It
// holds no per-calculation state: every call is a pure function of its
// arguments, so one engine may be shared by concurrent callers.
type TaxEngine struct {
	Tables       *domain.TaxTableConfig
	OrdinaryCalc *OrdinaryTaxCalculator
	Solver       *MaxISOSolver
	Logger       Logger
}

// NewTaxEngine creates an engine over the given tables. Nil tables fall back
// to the built-in table.
func NewTaxEngine(tables *domain.TaxTableConfig) *TaxEngine {
	return NewTaxEngineWithOptions(tables, DefaultSolverOptions())
}

// NewTaxEngineWithOptions creates an engine with custom solver options
func NewTaxEngineWithOptions(tables *domain.TaxTableConfig, options SolverOptions) *TaxEngine {
	if tables == nil {
		tables = domain.BuiltinTaxTables()
	}
	return &TaxEngine{
		Tables:       tables,
		OrdinaryCalc: NewOrdinaryTaxCalculator(tables),
		Solver:       NewMaxISOSolver(tables, options),
		Logger:       NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its solver. Nil installs a
// no-op logger.
func (te *TaxEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	te.Logger = l
	if te.Solver != nil {
		te.Solver.Logger = l
	}
}

// Calculate computes AMTI, AMT, ordinary tax and payable tax for one snapshot.
// The ledger is only read.
func (te *TaxEngine) Calculate(inputs domain.TaxInputs, ledger *domain.ExerciseLedger) domain.TaxOutputs {
	if _, ok := te.Tables.Lookup(inputs.FilingStatus); !ok {
		te.Logger.Warnf("no tax table for filing status %q, calculating against an empty table", inputs.FilingStatus)
	}

	totalBargain := TotalBargainElement(ledger)
	amti := inputs.OrdinaryIncome.
		Add(inputs.LongTermGains).
		Add(inputs.ShortTermGains).
		Add(totalBargain)

	amtCalc := NewAMTCalculator(te.Tables, inputs.FilingStatus)
	exemption, base, amt := amtCalc.CalculateFromAMTI(amti)
	ordinaryTax := te.OrdinaryCalc.CalculateOrdinaryTax(inputs)

	return domain.TaxOutputs{
		TotalBargainElement: totalBargain,
		AMTI:                amti,
		AMTExemption:        exemption,
		AMTBase:             base,
		AMT:                 amt,
		OrdinaryTax:         ordinaryTax,
		PayableTax:          decimal.Max(amt, ordinaryTax),
	}
}

// SolveMaxISOs estimates the break-even quantity for the most recent lot
func (te *TaxEngine) SolveMaxISOs(outputs domain.TaxOutputs, ledger *domain.ExerciseLedger, inputs domain.TaxInputs) (domain.MaxISOEstimate, bool) {
	return te.Solver.Solve(outputs, ledger, inputs)
}

// Recompute is the single entry point hosts call whenever inputs change: it
// calculates the outputs, runs the solver, and bundles both into a report.
func (te *TaxEngine) Recompute(inputs domain.TaxInputs, ledger *domain.ExerciseLedger) domain.TaxReport {
	outputs := te.Calculate(inputs, ledger)
	report := domain.TaxReport{
		Metadata: te.Tables.Metadata,
		Inputs:   inputs,
		Lots:     ledger.Lots(),
	}

	if estimate, ok := te.SolveMaxISOs(outputs, ledger, inputs); ok {
		isos := estimate.ISOs
		outputs.MaxISOs = &isos
		report.Estimate = &estimate
	}
	report.Outputs = outputs

	te.Logger.Debugf("recomputed %s: amti=%s amt=%s ordinary=%s payable=%s",
		inputs.FilingStatus, outputs.AMTI.StringFixed(2), outputs.AMT.StringFixed(2),
		outputs.OrdinaryTax.StringFixed(2), outputs.PayableTax.StringFixed(2))
	return report
}
