package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type RetryConfig struct {
	MaxRetries      int // Retries after the first attempt
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RetryingEmbedder retries transient provider failures with exponential
// backoff. Permanent failures (bad key, bad request) are returned at once.
type RetryingEmbedder struct {
	inner   Embedder
	cfg     RetryConfig
	limiter *RateLimiter
	logger  *zap.Logger
}

func NewRetryingEmbedder(inner Embedder, cfg RetryConfig, limiter *RateLimiter, logger *zap.Logger) *RetryingEmbedder {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingEmbedder{
		inner:   inner,
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

func (r *RetryingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	operation := func() error {
		if err := r.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		v, err := r.inner.Embed(ctx, text)
		if err != nil {
			if ctx.Err() != nil || !r.isTransient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		vector = v
		return nil
	}

	b := backoff.NewExponentialBackOff()
	if r.cfg.InitialInterval > 0 {
		b.InitialInterval = r.cfg.InitialInterval
	}
	if r.cfg.MaxInterval > 0 {
		b.MaxInterval = r.cfg.MaxInterval
	}
	// The caller's context bounds the total time
	b.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		r.logger.Warn("embedding request failed, retrying",
			zap.Error(err),
			zap.Duration("wait", wait),
		)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.cfg.MaxRetries)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return vector, nil
}

func (r *RetryingEmbedder) isTransient(err error) bool {
	if c, ok := r.inner.(transientClassifier); ok {
		return c.IsTransient(err)
	}
	return true
}
