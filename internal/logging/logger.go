// Package logging builds the zap loggers used by the CLI and HTTP server.
package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel = "ISOAMT_LOG_LEVEL"
	EnvLogJSON  = "ISOAMT_LOG_JSON"
)

// Config holds configuration for the logger
type Config struct {
	Level      string `json:"level" yaml:"level"`
	EnableJSON bool   `json:"enable_json" yaml:"enable_json"`
	// OutputPaths defaults to stderr so command output on stdout stays clean
	OutputPaths []string `json:"output_paths,omitempty" yaml:"output_paths,omitempty"`
}

// ConfigFromEnv reads ISOAMT_LOG_LEVEL and ISOAMT_LOG_JSON. The level
// defaults to warn; an unparseable JSON flag counts as false.
func ConfigFromEnv() Config {
	cfg := Config{Level: getEnvWithDefault(EnvLogLevel, "warn")}
	if raw := os.Getenv(EnvLogJSON); raw != "" {
		cfg.EnableJSON, _ = strconv.ParseBool(raw)
	}
	return cfg
}

// ParseLevel maps a level name onto zap; unknown names fall back to info
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a zap logger. JSON mode uses the production encoder with
// ISO8601 timestamps; otherwise a console encoder is used.
func New(cfg Config) (*zap.Logger, error) {
	level := ParseLevel(cfg.Level)

	var zapConfig zap.Config
	if cfg.EnableJSON {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.MessageKey = "message"
		zapConfig.InitialFields = map[string]interface{}{
			"service": "isoamt",
		}
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.DisableStacktrace = level > zapcore.DebugLevel

	zapConfig.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		zapConfig.OutputPaths = cfg.OutputPaths
	}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewFromEnv builds a logger from the environment, falling back to a no-op
// logger if construction fails
func NewFromEnv() *zap.Logger {
	logger, err := New(ConfigFromEnv())
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
