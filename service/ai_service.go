package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mohamadmonzer-a/railwayBackend/config"
	"go.uber.org/zap"
)

const defaultGeminiEmbeddingModel = "text-embedding-004"

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// transientClassifier is implemented by embedders that can tell retryable
// provider failures from permanent ones.
type transientClassifier interface {
	IsTransient(err error) bool
}

// NewEmbedder builds the provider selected by cfg, wrapped with throttling and
// bounded retries. The returned func releases provider resources.
func NewEmbedder(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Embedder, func(), error) {
	var (
		inner   Embedder
		cleanup = func() {}
	)
	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		inner = NewOpenAIEmbedder(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModelName)
	case config.ProviderGemini:
		model := cfg.EmbeddingModelName
		if model == config.DefaultEmbeddingModel {
			model = defaultGeminiEmbeddingModel
		}
		gemini, err := NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, model)
		if err != nil {
			return nil, cleanup, err
		}
		inner = gemini
		cleanup = func() { _ = gemini.Close() }
	default:
		return nil, cleanup, fmt.Errorf("unsupported embedding provider: %q", cfg.EmbeddingProvider)
	}

	retrying := NewRetryingEmbedder(inner, RetryConfig{
		MaxRetries:      cfg.EmbeddingMaxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     8 * time.Second,
	}, NewRateLimiter(cfg.EmbeddingRequestsPerSecond, 1), logger)
	return retrying, cleanup, nil
}

func retryableStatus(code int) bool {
	return code == 0 || code == 408 || code == 429 || code >= 500
}
