package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lifeops/lifeops-api/internal/config"
	"github.com/lifeops/lifeops-api/internal/generation"
	"github.com/lifeops/lifeops-api/internal/platform/gemini"
	"github.com/lifeops/lifeops-api/internal/platform/logger"
	"github.com/lifeops/lifeops-api/internal/store"
)

// application bundles the process-wide dependencies: configuration,
// the logger, the generation backend, and report storage.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
	reports   store.ReportStore
}

// newApplication loads configuration and constructs every dependency.
// Configuration errors are fatal: the service refuses to start with a
// missing or placeholder API key rather than failing on first use.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)

	generator, err := gemini.NewGeminiGenerator(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating generation backend: %w", err)
	}

	log.Info("application initialized",
		slog.String("model", cfg.LLM.ModelName),
		slog.Int("port", cfg.Server.Port))

	return &application{
		config:    cfg,
		logger:    log,
		generator: generator,
		reports:   store.NewMemoryReportStore(),
	}, nil
}
