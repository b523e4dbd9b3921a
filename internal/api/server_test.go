package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(t, NewServer(nil, nil), http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(CorrelationIDHeader), "Should generate a correlation ID")
}

func TestCorrelationIDPreserved(t *testing.T) {
	w := doRequest(t, NewServer(nil, nil), http.MethodGet, "/healthz", "", map[string]string{
		CorrelationIDHeader: "test-correlation-id-123",
	})

	assert.Equal(t, "test-correlation-id-123", w.Header().Get(CorrelationIDHeader))
}

func TestTables(t *testing.T) {
	w := doRequest(t, NewServer(nil, nil), http.MethodGet, "/api/v1/tables", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tables domain.TaxTableConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tables))
	assert.Equal(t, 2019, tables.Metadata.TaxYear)
	assert.Len(t, tables.Statuses, 3)
}

func TestFormats(t *testing.T) {
	w := doRequest(t, NewServer(nil, nil), http.MethodGet, "/api/v1/formats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pdf")
}

func TestCalculate(t *testing.T) {
	body := `{
		"filing_status": "single",
		"ordinary_income": "100,000",
		"exercises": [{"isos": 10000, "strike": 1, "fmv": 11}]
	}`
	w := doRequest(t, NewServer(nil, nil), http.MethodPost, "/api/v1/calculate", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report domain.TaxReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "33358", report.Outputs.AMT.String())
	assert.Equal(t, "15246.5", report.Outputs.OrdinaryTax.String())
	require.Len(t, report.Lots, 1)
	require.NotNil(t, report.Estimate)
	assert.True(t, report.Estimate.Converged)
	assert.Equal(t, domain.SolverModeLastLot, report.Estimate.Mode)
}

func TestCalculate_FullAMTIMode(t *testing.T) {
	body := `{"ordinary_income": 100000, "long_term_gains": 50000, "solver_mode": "full_amti",
		"exercises": [{"isos": 100, "strike": 5, "fmv": 15}, {"isos": 10000, "strike": 1, "fmv": 11}]}`
	w := doRequest(t, NewServer(nil, nil), http.MethodPost, "/api/v1/calculate", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report domain.TaxReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.NotNil(t, report.Estimate)
	assert.Equal(t, domain.SolverModeFullAMTI, report.Estimate.Mode)
	assert.Len(t, report.Lots, 2)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"malformed json", `{"ordinary_income": `, http.StatusBadRequest, "invalid request body"},
		{"unknown status", `{"filing_status": "widowed"}`, http.StatusUnprocessableEntity, "unknown filing status"},
		{"unknown solver mode", `{"solver_mode": "newton"}`, http.StatusUnprocessableEntity, "unknown solver mode"},
		{"negative isos", `{"exercises": [{"isos": -5, "strike": 1, "fmv": 2}]}`, http.StatusUnprocessableEntity, "isos cannot be negative"},
	}

	s := NewServer(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/v1/calculate", tt.body, map[string]string{
				CorrelationIDHeader: "err-123",
			})
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.want)
			assert.Equal(t, "err-123", resp["correlation_id"])
		})
	}
}

func TestReport_Formats(t *testing.T) {
	body := `{"ordinary_income": 100000, "exercises": [{"isos": 10000, "strike": 1, "fmv": 11}]}`
	s := NewServer(nil, nil)

	w := doRequest(t, s, http.MethodPost, "/api/v1/report?format=pdf", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doRequest(t, s, http.MethodPost, "/api/v1/report?format=csv", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	w = doRequest(t, s, http.MethodPost, "/api/v1/report", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, json.Valid(w.Body.Bytes()))

	w = doRequest(t, s, http.MethodPost, "/api/v1/report?format=docx", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
