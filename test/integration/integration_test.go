package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rgehrsitz/isoamt/internal/api"
	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	singleScenario  = "../../testdata/scenario_single.yaml"
	marriedScenario = "../../testdata/scenario_married.json"
	tablesTOML      = "../../testdata/tables_2019.toml"
)

func loadReport(t *testing.T, path string, tables *domain.TaxTableConfig) domain.TaxReport {
	t.Helper()
	scenario, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	inputs, err := scenario.Inputs()
	require.NoError(t, err)
	mode, err := scenario.Mode()
	require.NoError(t, err)

	engine := calculation.NewTaxEngineWithOptions(tables, calculation.SolverOptions{Mode: mode})
	return engine.Recompute(inputs, scenario.Ledger())
}

func TestEndToEndCalculation(t *testing.T) {
	report := loadReport(t, singleScenario, nil)

	assert.Equal(t, domain.FilingSingle, report.Inputs.FilingStatus)
	assert.Equal(t, "100000", report.Inputs.OrdinaryIncome.String())
	require.Len(t, report.Lots, 1)
	assert.Equal(t, "33358", report.Outputs.AMT.String())
	assert.True(t, report.Outputs.PayableTax.Equal(report.Outputs.AMT))
	assert.True(t, report.ShowMaxISOs())
	assert.True(t, report.Estimate.ISOs.LessThan(decimal.NewFromInt(10000)), "the break-even is below the exercised quantity")
}

func TestTableFileMatchesBuiltin(t *testing.T) {
	tables, err := config.NewInputParser().LoadTaxTablesFromFile(tablesTOML)
	require.NoError(t, err)

	for _, path := range []string{singleScenario, marriedScenario} {
		builtin := loadReport(t, path, nil)
		fromFile := loadReport(t, path, tables)
		assert.True(t, builtin.Outputs.AMT.Equal(fromFile.Outputs.AMT), path)
		assert.True(t, builtin.Outputs.OrdinaryTax.Equal(fromFile.Outputs.OrdinaryTax), path)
		assert.True(t, builtin.Outputs.PayableTax.Equal(fromFile.Outputs.PayableTax), path)
	}
}

func TestOutputGeneration(t *testing.T) {
	report := loadReport(t, marriedScenario, nil)
	require.Len(t, report.Lots, 2)
	require.NotNil(t, report.Estimate)
	assert.Equal(t, domain.SolverModeFullAMTI, report.Estimate.Mode)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.GenerateReport(&buf, &report, name))
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestAPIMatchesEngine(t *testing.T) {
	body, err := os.ReadFile(marriedScenario)
	require.NoError(t, err)

	srv := api.NewServer(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var fromAPI domain.TaxReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fromAPI))

	direct := loadReport(t, marriedScenario, nil)
	assert.True(t, direct.Outputs.AMT.Equal(fromAPI.Outputs.AMT))
	assert.True(t, direct.Outputs.OrdinaryTax.Equal(fromAPI.Outputs.OrdinaryTax))
	require.NotNil(t, fromAPI.Estimate)
	assert.True(t, direct.Estimate.ISOs.Equal(fromAPI.Estimate.ISOs))
}
