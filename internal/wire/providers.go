package wire

import (
	"context"
	"log/slog"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/core"
	"github.com/sevigo/code-sage/internal/db"
	"github.com/sevigo/code-sage/internal/llm"
	"github.com/sevigo/code-sage/internal/logger"
	"github.com/sevigo/code-sage/internal/server"
	"github.com/sevigo/code-sage/internal/storage"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	log := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(log)
	return log
}

func provideDB(cfg *config.Config) (*db.DB, func(), error) {
	return db.NewDatabase(&cfg.Database)
}

func provideStore(dbConn *db.DB) storage.Store {
	return storage.NewStore(dbConn.DB)
}

func provideModel(ctx context.Context, cfg *config.Config, log *slog.Logger) (llms.Model, error) {
	return llm.NewModel(ctx, cfg, log)
}

func provideReviewer(cfg *config.Config, model llms.Model, prompts *llm.PromptManager, log *slog.Logger) core.Reviewer {
	return llm.NewService(cfg, model, prompts, log)
}

func provideServer(ctx context.Context, cfg *config.Config, reviewer core.Reviewer, store storage.Store, log *slog.Logger) *server.Server {
	return server.NewServer(ctx, cfg, reviewer, store, log)
}
