// Package server exposes the calculation engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/compare"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Server is the HTTP adapter over one calculation engine. The engine keeps no per-call
// state, so handlers share it.
type Server struct {
	cfg     *config.ServerConfig
	rules   domain.TaxRules
	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	parser  *config.InputParser
	logger  *zap.Logger
	tracer  trace.Tracer
	handler http.Handler
}

// Option customizes a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer sets the tracer used for request spans
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New creates a server calculating with rules
func New(cfg *config.ServerConfig, rules domain.TaxRules, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		rules:  rules,
		engine: calculation.NewCalculationEngineWithRules(rules),
		parser: config.NewInputParserWithRules(rules),
		logger: zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer("taxregimes"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine.SetLogger(s.logger.Sugar())
	s.compare = compare.NewCompareEngine(s.engine)

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/calculate", s.instrument("calculate", http.HandlerFunc(s.handleCalculate)))
	mux.Handle("POST /api/v1/compare", s.instrument("compare", http.HandlerFunc(s.handleCompare)))
	mux.Handle("GET /api/v1/regimes", s.instrument("regimes", http.HandlerFunc(s.handleRegimes)))
	mux.Handle("GET /healthz", s.instrument("healthz", http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET /metrics", promhttp.Handler())
	s.handler = s.withRequestID(mux)

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
