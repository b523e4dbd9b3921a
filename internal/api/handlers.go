package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/output"
	"go.uber.org/zap"
)

var contentTypes = map[string]string{
	"json":            "application/json",
	"yaml":            "application/yaml",
	"csv":             "text/csv",
	"html":            "text/html; charset=utf-8",
	"pdf":             "application/pdf",
	"console":         "text/plain; charset=utf-8",
	"console-verbose": "text/plain; charset=utf-8",
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTables(c *gin.Context) {
	c.JSON(http.StatusOK, s.Tables)
}

func (s *Server) handleFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"formats": output.AvailableFormatterNames()})
}

func (s *Server) handleCalculate(c *gin.Context) {
	report, ok := s.recompute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// handleReport renders the calculation with any registered formatter,
// selected by the format query parameter
func (s *Server) handleReport(c *gin.Context) {
	formatter := output.GetFormatterByName(c.DefaultQuery("format", "json"))
	if formatter == nil {
		s.fail(c, http.StatusBadRequest, "unsupported format", zap.String("format", c.Query("format")))
		return
	}

	report, ok := s.recompute(c)
	if !ok {
		return
	}

	data, err := formatter.Format(&report)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "failed to render report", zap.Error(err))
		return
	}

	contentType, found := contentTypes[formatter.Name()]
	if !found {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

// recompute binds a scenario from the body and runs the engine. On failure
// it writes the error response and returns false.
func (s *Server) recompute(c *gin.Context) (domain.TaxReport, bool) {
	var scenario config.Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		s.fail(c, http.StatusBadRequest, "invalid request body", zap.Error(err))
		return domain.TaxReport{}, false
	}
	if err := s.parser.ValidateScenario(&scenario); err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err.Error())
		return domain.TaxReport{}, false
	}

	inputs, err := scenario.Inputs()
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err.Error())
		return domain.TaxReport{}, false
	}
	mode, err := scenario.Mode()
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err.Error())
		return domain.TaxReport{}, false
	}

	engine := calculation.NewTaxEngineWithOptions(s.Tables, calculation.SolverOptions{Mode: mode})
	engine.SetLogger(s.requestLogger(c).Sugar())
	return engine.Recompute(inputs, scenario.Ledger()), true
}

func (s *Server) requestLogger(c *gin.Context) *zap.Logger {
	return s.Logger.With(zap.String("correlation_id", GetCorrelationID(c)))
}

func (s *Server) fail(c *gin.Context, status int, msg string, fields ...zap.Field) {
	s.requestLogger(c).Warn(msg, fields...)
	c.AbortWithStatusJSON(status, gin.H{
		"error":          msg,
		"correlation_id": GetCorrelationID(c),
	})
}
