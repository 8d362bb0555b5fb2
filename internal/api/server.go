// Package api exposes the business-day calculator and the diagnostic writer over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/bizday/internal/businessday"
	"github.com/vietddude/bizday/internal/core/domain"
	"github.com/vietddude/bizday/internal/core/validation"
)

// Calculator runs a business-day calculation on raw input.
type Calculator interface {
	Calculate(ctx context.Context, in validation.Input, mode businessday.Mode) (string, error)
}

// RecordWriter accepts diagnostic records for best-effort persistence.
type RecordWriter interface {
	WriteRecord(rec domain.DiagnosticRecord)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server provides the HTTP endpoints.
type Server struct {
	calc   Calculator
	audit  RecordWriter
	health HealthCheck
	server *http.Server
	log    *slog.Logger
}

// NewServer creates a new server listening on port. health may be nil.
func NewServer(calc Calculator, audit RecordWriter, health HealthCheck, port int) *Server {
	s := &Server{
		calc:   calc,
		audit:  audit,
		health: health,
		log:    slog.Default().With("component", "api"),
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/business-days/next", s.handleCalculate(businessday.ModeNext))
		r.Get("/business-days/next-decendio", s.handleCalculate(businessday.ModeDecendio))
		r.Post("/diagnostics", s.handleDiagnostic)
	})
	return r
}

// Start starts the HTTP server. It returns nil after Stop.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
