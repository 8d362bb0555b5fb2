package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vietddude/bizday/internal/api"
	"github.com/vietddude/bizday/internal/audit"
	"github.com/vietddude/bizday/internal/businessday"
	"github.com/vietddude/bizday/internal/core/config"
	"github.com/vietddude/bizday/internal/registry"
)

// App is the main application struct that manages the service lifecycle.
type App struct {
	cfg      *config.AppConfig
	backend  *Backend
	registry *registry.Registry
	service  *businessday.Service
	audit    *audit.Writer
	server   *api.Server
	log      *slog.Logger
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	backend, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	reg := registry.New(backend, cfg.Registry)
	svc := businessday.NewService(reg)
	writer := audit.NewWriter(backend, cfg.Audit)

	return &App{
		cfg:      cfg,
		backend:  backend,
		registry: reg,
		service:  svc,
		audit:    writer,
		server:   api.NewServer(svc, writer, backend.Health, cfg.Server.Port),
		log:      slog.Default().With("component", "app"),
	}, nil
}

// Service returns the calculation service.
func (a *App) Service() *businessday.Service { return a.service }

// Audit returns the diagnostic writer.
func (a *App) Audit() *audit.Writer { return a.audit }

// Start starts the HTTP server and background collectors. It does not block.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Error("HTTP server failed", "error", err)
		}
	}()

	if a.backend.db != nil {
		a.backend.db.StartMetricsCollector(ctx)
	}

	a.log.Info("Service started", "port", a.cfg.Server.Port, "store", a.backend.Name)
	return nil
}

// Stop shuts down the server, drains the audit writer and closes the store.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping service...")

	var errs []error
	if err := a.server.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.audit.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.backend.Close(); err != nil {
		a.log.Warn("Failed to close store", "error", err)
	}
	return errors.Join(errs...)
}
