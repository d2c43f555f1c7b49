package store

import (
	"context"
	"log/slog"
	"time"

	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
)

// observedCache logs cache failures, reports them as misses and records
// hit/miss counts.
type observedCache struct {
	inner   ViewCache
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Observe wraps a cache so that errors never reach callers.
func Observe(inner ViewCache, name string, logger *slog.Logger, rec *metrics.Recorder) ViewCache {
	return &observedCache{inner: inner, name: name, logger: logger, metrics: rec}
}

func (c *observedCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	found, err := c.inner.Get(ctx, key, dest)
	if err != nil {
		logging.Warn(c.logger, "view cache read failed",
			logging.FieldCacheKey, key,
			"error", err,
		)
		found = false
	}
	c.metrics.RecordCacheLookup(c.name, found)
	return found, nil
}

func (c *observedCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, value, ttl); err != nil {
		logging.Warn(c.logger, "view cache write failed",
			logging.FieldCacheKey, key,
			"error", err,
		)
	}
	return nil
}
