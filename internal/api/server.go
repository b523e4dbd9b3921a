// Package api exposes the calculator over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

// Server serves calculations against a fixed set of tax tables
type Server struct {
	Tables *domain.TaxTableConfig
	Logger *zap.Logger
	parser *config.InputParser
	router *gin.Engine
}

// NewServer builds the router. Nil tables fall back to the built-in set and
// a nil logger discards output.
func NewServer(tables *domain.TaxTableConfig, logger *zap.Logger) *Server {
	if tables == nil {
		tables = domain.BuiltinTaxTables()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		Tables: tables,
		Logger: logger,
		parser: config.NewInputParser(),
	}

	router := gin.New()
	router.Use(gin.Recovery(), CorrelationIDMiddleware(logger))
	s.routes(router)
	s.router = router
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	v1.GET("/tables", s.handleTables)
	v1.GET("/formats", s.handleFormats)
	v1.POST("/calculate", s.handleCalculate)
	v1.POST("/report", s.handleReport)
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 20 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
