package calculation

import (
	"testing"

	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	assertDecimal(t, "10", opts.Tolerance, "tolerance")
	assert.Equal(t, 100, opts.MaxIterations)
	assert.Equal(t, domain.SolverModeLastLot, opts.Mode)
}

func TestSolverOptions_WithDefaults(t *testing.T) {
	opts := SolverOptions{}.withDefaults()

	assert.Equal(t, DefaultSolverOptions(), opts, "Zero options should take defaults")

	custom := SolverOptions{Tolerance: dec("1"), MaxIterations: 5, Mode: domain.SolverModeFullAMTI}.withDefaults()
	assertDecimal(t, "1", custom.Tolerance, "custom tolerance")
	assert.Equal(t, 5, custom.MaxIterations)
	assert.Equal(t, domain.SolverModeFullAMTI, custom.Mode)

	negative := SolverOptions{Tolerance: dec("-1")}.withDefaults()
	assertDecimal(t, "10", negative.Tolerance, "negative tolerance")
}

func TestMaxISOSolver_SmallToleranceIsHonored(t *testing.T) {
	ledger := domain.NewExerciseLedger()
	AddExerciseLot(ledger, dec("10000"), dec("1"), dec("11"))
	inputs := singleInputs(100000)

	coarse := NewTaxEngine(nil).Recompute(inputs, ledger)
	fine := NewTaxEngineWithOptions(nil, SolverOptions{Tolerance: dec("0.01")}).Recompute(inputs, ledger)

	require.NotNil(t, coarse.Estimate)
	require.NotNil(t, fine.Estimate)
	assert.True(t, fine.Estimate.Converged)
	assert.True(t, fine.Estimate.Discrepancy.Abs().LessThanOrEqual(dec("0.01")))
	assert.Greater(t, fine.Estimate.Iterations, coarse.Estimate.Iterations)
}

func TestMaxISOSolver_EmptyLedger(t *testing.T) {
	engine := NewTaxEngine(nil)
	inputs := singleInputs(100000)
	ledger := domain.NewExerciseLedger()

	_, ok := engine.SolveMaxISOs(engine.Calculate(inputs, ledger), ledger, inputs)
	assert.False(t, ok, "Empty ledger has no estimate")

	_, ok = engine.SolveMaxISOs(engine.Calculate(inputs, nil), nil, inputs)
	assert.False(t, ok, "Nil ledger has no estimate")
}

func TestMaxISOSolver_ConvergesToBreakEven(t *testing.T) {
	engine := NewTaxEngine(nil)
	inputs := singleInputs(100000)
	ledger := domain.NewExerciseLedger()
	lot := AddExerciseLot(ledger, dec("10000"), dec("1"), dec("11"))

	outputs := engine.Calculate(inputs, ledger)
	estimate, ok := engine.SolveMaxISOs(outputs, ledger, inputs)
	require.True(t, ok)

	assert.True(t, estimate.Converged, "Should converge")
	assert.LessOrEqual(t, estimate.Iterations, 100)
	assert.True(t, estimate.Discrepancy.Abs().LessThanOrEqual(dec("10")))
	assert.True(t, estimate.ISOs.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, estimate.ISOs.LessThanOrEqual(lot.ISOCount))

	// 0.26 * (100,000 + 10c - 71,700) = 15,246.50  =>  c ~ 3,034
	assert.InDelta(t, 3034.04, estimate.ISOs.InexactFloat64(), 4)

	// Independently verify the last-lot AMT at the returned quantity
	amtCalc := NewAMTCalculator(engine.Tables, domain.FilingSingle)
	_, _, amt := amtCalc.CalculateFromAMTI(inputs.OrdinaryIncome.Add(
		CalculateBargainElement(estimate.ISOs, lot.StrikePrice, lot.FairMarketValue)))
	assert.True(t, amt.Sub(outputs.OrdinaryTax).Abs().LessThanOrEqual(dec("10")))
}

func TestMaxISOSolver_AlreadyWithinTolerance(t *testing.T) {
	engine := NewTaxEngine(nil)
	outputs := domain.TaxOutputs{AMT: dec("1000"), OrdinaryTax: dec("995")}
	ledger := domain.NewExerciseLedger()
	AddExerciseLot(ledger, dec("250"), dec("1"), dec("5"))

	estimate, ok := engine.SolveMaxISOs(outputs, ledger, singleInputs(0))
	require.True(t, ok)

	assert.Equal(t, 0, estimate.Iterations, "No bisection needed")
	assert.True(t, estimate.Converged)
	assertDecimal(t, "250", estimate.ISOs, "candidate starts at the lot quantity")
}

func TestMaxISOSolver_IterationCap(t *testing.T) {
	engine := NewTaxEngine(nil)
	logger := &TestLogger{}
	engine.SetLogger(logger)

	// Strike equals FMV: the probed lot never moves AMT, so the search
	// cannot close the gap and must stop at the cap.
	inputs := singleInputs(100000)
	ledger := domain.NewExerciseLedger()
	AddExerciseLot(ledger, dec("800"), dec("12"), dec("12"))
	outputs := engine.Calculate(inputs, ledger)
	require.True(t, outputs.AMT.LessThan(outputs.OrdinaryTax))

	estimate, ok := engine.SolveMaxISOs(outputs, ledger, inputs)
	require.True(t, ok)

	assert.False(t, estimate.Converged)
	assert.Equal(t, DefaultSolverOptions().MaxIterations+1, estimate.Iterations,
		"loop runs while the iteration count is <= the cap")
	assertDecimal(t, "800", estimate.ISOs, "best candidate is returned")
	assert.NotEmpty(t, logger.Warns, "Should warn on non-convergence")
	assert.Len(t, logger.Debugs, estimate.Iterations)
}

func TestMaxISOSolver_CustomCap(t *testing.T) {
	tables := domain.BuiltinTaxTables()
	engine := NewTaxEngineWithOptions(tables, SolverOptions{MaxIterations: 3})
	inputs := singleInputs(100000)
	ledger := domain.NewExerciseLedger()
	AddExerciseLot(ledger, dec("1000000"), dec("1"), dec("11"))

	estimate, ok := engine.SolveMaxISOs(engine.Calculate(inputs, ledger), ledger, inputs)
	require.True(t, ok)

	assert.Equal(t, 4, estimate.Iterations)
	assert.False(t, estimate.Converged)
	assertDecimal(t, "62500", estimate.ISOs, "three halvings then one more")
}

func TestMaxISOSolver_LastLotModeIgnoresGainsAndEarlierLots(t *testing.T) {
	engine := NewTaxEngine(nil)
	inputs := singleInputs(100000)
	inputs.LongTermGains = dec("50000")

	ledger := domain.NewExerciseLedger()
	AddExerciseLot(ledger, dec("10000"), dec("1"), dec("11"))

	outputs := engine.Calculate(inputs, ledger)
	assertDecimal(t, "22746.5", outputs.OrdinaryTax, "ordinary tax with 15% gains tier")

	estimate, ok := engine.SolveMaxISOs(outputs, ledger, inputs)
	require.True(t, ok)

	// 0.26 * (28,300 + 10c) = 22,746.50  =>  c ~ 5,918.65
	assert.True(t, estimate.Converged)
	assert.Equal(t, domain.SolverModeLastLot, estimate.Mode)
	assert.InDelta(t, 5918.65, estimate.ISOs.InexactFloat64(), 4)
}

func TestMaxISOSolver_FullAMTIMode(t *testing.T) {
	engine := NewTaxEngineWithOptions(nil, SolverOptions{Mode: domain.SolverModeFullAMTI})
	inputs := singleInputs(100000)
	inputs.LongTermGains = dec("50000")

	ledger := domain.NewExerciseLedger()
	earlier := AddExerciseLot(ledger, dec("100"), dec("5"), dec("15"))
	last := AddExerciseLot(ledger, dec("10000"), dec("1"), dec("11"))

	outputs := engine.Calculate(inputs, ledger)
	estimate, ok := engine.SolveMaxISOs(outputs, ledger, inputs)
	require.True(t, ok)
	assert.True(t, estimate.Converged)
	assert.Equal(t, domain.SolverModeFullAMTI, estimate.Mode)

	// Recalculate the whole ledger with the last lot replaced by the estimate
	probe := domain.NewExerciseLedger(earlier, NewExerciseLot(estimate.ISOs, last.StrikePrice, last.FairMarketValue))
	check := engine.Calculate(inputs, probe)
	assert.True(t, check.AMT.Sub(check.OrdinaryTax).Abs().LessThanOrEqual(dec("10")),
		"full AMT at the estimate should match ordinary tax, diff %s", check.AMT.Sub(check.OrdinaryTax).String())

	// 0.26 * (150,000 + 1,000 + 10c - 71,700) = 22,746.50  =>  c ~ 818.65
	assert.InDelta(t, 818.65, estimate.ISOs.InexactFloat64(), 4)
}
