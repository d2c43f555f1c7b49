package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
)

const (
	defaultBackoff     = 200 * time.Millisecond
	defaultMaxInterval = 2 * time.Second
)

// retryingFetcher wraps a Fetcher with bounded exponential backoff for idempotent GETs.
type retryingFetcher struct {
	inner      Fetcher
	logger     *slog.Logger
	metrics    *metrics.Recorder
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// NewRetryingFetcher wraps the given fetcher with retries. Zero retries returns inner unchanged.
func NewRetryingFetcher(inner Fetcher, logger *slog.Logger, rec *metrics.Recorder, retries int, initial time.Duration) Fetcher {
	if retries <= 0 {
		return inner
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingFetcher{
		inner:      inner,
		logger:     logger,
		metrics:    rec,
		maxRetries: uint64(retries),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = defaultMaxInterval
			return b
		},
	}
}

func (r *retryingFetcher) FetchJSON(ctx context.Context, endpoint, url string, dest any) error {
	attempt := 0
	op := func() error {
		attempt++
		err := r.inner.FetchJSON(ctx, endpoint, url, dest)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		r.metrics.RecordRetry(endpoint)
		logWithEndpoint(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, endpoint, "statsapi fetch retry",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	err := backoff.RetryNotify(op, policy, notify)
	if err != nil {
		logWithEndpoint(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, endpoint, "statsapi fetch failed",
			"attempts", attempt,
			"err", err,
		)
	}
	return err
}
