//go:build wireinject
// +build wireinject

// Package wire assembles the application's dependency graph.
package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/code-sage/internal/app"
	"github.com/sevigo/code-sage/internal/config"
	"github.com/sevigo/code-sage/internal/llm"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		config.LoadConfig,
		provideLogger,
		provideDB,
		provideStore,
		provideModel,
		llm.NewPromptManager,
		provideReviewer,
		provideServer,
		app.New,
	)
	return nil, nil, nil
}
