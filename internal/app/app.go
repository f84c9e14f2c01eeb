// Package app holds the assembled application and its lifecycle.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/server"
)

// App holds the main application components.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// New assembles the application from its already-constructed components.
func New(ctx context.Context, cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting code-sage",
		"server_port", a.cfg.ServerPort,
		"llm_provider", a.cfg.LLMProvider,
		"model", a.cfg.ModelName)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly. The database connection is closed
// by the cleanup function returned from initialization.
func (a *App) Stop() error {
	a.logger.Info("shutting down code-sage services")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("code-sage stopped successfully")
	return nil
}
