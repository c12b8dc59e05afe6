/*
Copyright © 2025 mohamadmonzer-a
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mohamadmonzer-a/railwayBackend/config"
	"github.com/mohamadmonzer-a/railwayBackend/database"
	"github.com/mohamadmonzer-a/railwayBackend/logger"
	"github.com/mohamadmonzer-a/railwayBackend/service"
)

// app holds everything the commands share once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	uploads *service.UploadService
	cleanup func()
}

// newApp loads and validates configuration, then connects the store and the
// embedding provider. Missing secrets are fatal.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	status := config.CheckEnv(os.Getenv)
	log.Info("environment",
		zap.String(config.EnvOpenAIAPIKey, status.OpenAIAPIKey),
		zap.String(config.EnvSupabaseURL, status.SupabaseURL),
		zap.String(config.EnvSupabaseServiceRoleKey, status.SupabaseServiceRoleKey),
	)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, closeStore, err := database.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", cfg.StoreBackend, err)
	}
	embedder, closeEmbedder, err := service.NewEmbedder(ctx, cfg, log)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to create %s embedder: %w", cfg.EmbeddingProvider, err)
	}

	uploads := service.NewUploadService(service.NewPDFService(), embedder, store, service.UploadServiceConfig{
		CallTimeout:    cfg.ExternalCallTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, log)

	log.Info("ready",
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("embedding_provider", cfg.EmbeddingProvider),
		zap.String("embedding_model", cfg.EmbeddingModelName),
	)
	return &app{
		cfg:     cfg,
		logger:  log,
		uploads: uploads,
		cleanup: func() {
			closeEmbedder()
			closeStore()
			_ = log.Sync()
		},
	}, nil
}
