package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogJSON, "")
	cfg := ConfigFromEnv()
	assert.Equal(t, "warn", cfg.Level)
	assert.False(t, cfg.EnableJSON)

	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogJSON, "true")
	cfg = ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.EnableJSON)

	t.Setenv(EnvLogJSON, "maybe")
	assert.False(t, ConfigFromEnv().EnableJSON)
}

func TestNew_JSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(Config{Level: "info", EnableJSON: true, OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("recomputed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug should be filtered at info level")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "recomputed", entry["message"])
	assert.Equal(t, "isoamt", entry["service"])
	assert.Contains(t, entry, "timestamp")
}

func TestSugaredLoggerSatisfiesCalculationLogger(t *testing.T) {
	logger, err := New(Config{Level: "error", OutputPaths: []string{filepath.Join(t.TempDir(), "log.txt")}})
	require.NoError(t, err)

	var l calculation.Logger = logger.Sugar()
	engine := calculation.NewTaxEngine(nil)
	engine.SetLogger(l)
	assert.Equal(t, l, engine.Logger)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	assert.NotNil(t, NewFromEnv())
}
