package calculation

import (
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions configures the max-ISO bisection. Zero values take the
// defaults, so a zero Tolerance means $10, not an exact match. For a tighter
// search pass a small positive tolerance such as 0.01; the iteration cap still
// bounds the loop.
type SolverOptions struct {
	Tolerance     decimal.Decimal   // Stop once |AMT - ordinary tax| is within this many dollars; zero or negative means $10
	MaxIterations int               // Hard cap; the loop runs while iterations <= MaxIterations
	Mode          domain.SolverMode // Which AMTI is recomputed at each candidate
}

// DefaultSolverOptions returns the $10 tolerance, 100 iteration cap and the
// last-lot recomputation
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(10),
		MaxIterations: 100,
		Mode:          domain.SolverModeLastLot,
	}
}

func (o SolverOptions) withDefaults() SolverOptions {
	def := DefaultSolverOptions()
	if o.Tolerance.IsZero() || o.Tolerance.IsNegative() {
		o.Tolerance = def.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.Mode == "" {
		o.Mode = def.Mode
	}
	return o
}

// MaxISOSolver searches for the quantity of the most recent lot at which the
// recomputed AMT equals ordinary tax. It is a plain bisection over [0, isos]
// and relies on AMT being non-decreasing in the ISO count; the iteration cap
// guarantees termination when that does not hold.
type MaxISOSolver struct {
	Tables  *domain.TaxTableConfig
	Options SolverOptions
	Logger  Logger
}

// NewMaxISOSolver creates a solver over the given tables
func NewMaxISOSolver(tables *domain.TaxTableConfig, options SolverOptions) *MaxISOSolver {
	return &MaxISOSolver{
		Tables:  tables,
		Options: options,
		Logger:  NopLogger{},
	}
}

// Solve returns the break-even estimate, or false when the ledger is empty.
// outputs must come from Calculate over the same inputs and ledger; its AMT
// and ordinary tax seed the search.
func (s *MaxISOSolver) Solve(outputs domain.TaxOutputs, ledger *domain.ExerciseLedger, inputs domain.TaxInputs) (domain.MaxISOEstimate, bool) {
	last, ok := ledger.Last()
	if !ok {
		return domain.MaxISOEstimate{}, false
	}

	opts := s.Options.withDefaults()
	logger := s.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	amtCalc := NewAMTCalculator(s.Tables, inputs.FilingStatus)
	baseAMTI := solverBaseAMTI(inputs, ledger, opts.Mode)
	two := decimal.NewFromInt(2)

	lower := decimal.Zero
	upper := last.ISOCount
	candidate := last.ISOCount
	discrepancy := outputs.AMT.Sub(outputs.OrdinaryTax)
	iterations := 0

	for discrepancy.Abs().GreaterThan(opts.Tolerance) && iterations <= opts.MaxIterations {
		if discrepancy.IsPositive() {
			upper = candidate
		} else {
			lower = candidate
		}
		candidate = upper.Add(lower).Div(two)

		bargain := CalculateBargainElement(candidate, last.StrikePrice, last.FairMarketValue)
		_, _, newAMT := amtCalc.CalculateFromAMTI(baseAMTI.Add(bargain))
		discrepancy = newAMT.Sub(outputs.OrdinaryTax)
		iterations++

		logger.Debugf("max-iso bisection %d: candidate=%s lower=%s upper=%s discrepancy=%s",
			iterations, candidate.StringFixed(4), lower.StringFixed(4), upper.StringFixed(4), discrepancy.StringFixed(2))
	}

	converged := !discrepancy.Abs().GreaterThan(opts.Tolerance)
	if !converged {
		logger.Warnf("max-iso bisection stopped after %d iterations with discrepancy $%s", iterations, discrepancy.StringFixed(2))
	}

	return domain.MaxISOEstimate{
		ISOs:        candidate,
		Iterations:  iterations,
		Converged:   converged,
		Discrepancy: discrepancy,
		Mode:        opts.Mode,
	}, true
}

// solverBaseAMTI is the part of AMTI that does not depend on the candidate
func solverBaseAMTI(inputs domain.TaxInputs, ledger *domain.ExerciseLedger, mode domain.SolverMode) decimal.Decimal {
	if mode != domain.SolverModeFullAMTI {
		return inputs.OrdinaryIncome
	}

	base := inputs.OrdinaryIncome.Add(inputs.LongTermGains).Add(inputs.ShortTermGains)
	lots := ledger.Lots()
	for _, lot := range lots[:len(lots)-1] {
		base = base.Add(lot.BargainElement)
	}
	return base
}
