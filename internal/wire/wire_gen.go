// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/code-sage/internal/app"
	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/llm"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := provideLogger(cfg)

	dbConn, dbCleanup, err := provideDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := provideStore(dbConn)

	model, err := provideModel(ctx, cfg, log)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	prompts, err := llm.NewPromptManager()
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to initialize prompt manager: %w", err)
	}

	reviewer := provideReviewer(cfg, model, prompts, log)
	srv := provideServer(ctx, cfg, reviewer, store, log)
	application := app.New(ctx, cfg, srv, log)

	return application, dbCleanup, nil
}
