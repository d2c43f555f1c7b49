package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mlb-scoreboard-service/internal/app/games"
	"mlb-scoreboard-service/internal/app/standings"
	"mlb-scoreboard-service/internal/app/teams"
	"mlb-scoreboard-service/internal/config"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/providers"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/store"
)

const redisPingTimeout = 2 * time.Second

// StatsSource is every upstream read the view services make.
type StatsSource interface {
	games.Source
	standings.Source
	teams.Source
}

var _ StatsSource = (*statsapi.Client)(nil)

// providerFactory assembles the stats API client with the shared gateway and retry wrapper.
type providerFactory struct {
	logger     *slog.Logger
	metrics    *metrics.Recorder
	httpClient *http.Client
}

func newProviderFactory(logger *slog.Logger, rec *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: rec}
}

func (f providerFactory) build(cfg config.Config) *statsapi.Client {
	gateway := statsapi.NewGateway(statsapi.GatewayConfig{
		HTTPClient: f.httpClient,
		Timeout:    cfg.StatsAPI.Timeout,
		Logger:     f.logger,
		Metrics:    f.metrics,
	})
	var fetcher providers.Fetcher = gateway
	if cfg.StatsAPI.Retries > 0 {
		fetcher = providers.NewRetryingFetcher(gateway, f.logger, f.metrics, cfg.StatsAPI.Retries, cfg.StatsAPI.Backoff)
	}
	return statsapi.NewClient(fetcher, cfg.StatsAPI.BaseURL)
}

// buildViewCache picks Redis when REDIS_URL is set and falls back to the
// in-process cache when it is unset or cannot be parsed.
func buildViewCache(cfg config.Config, logger *slog.Logger, rec *metrics.Recorder) (store.ViewCache, io.Closer) {
	if cfg.Cache.RedisURL != "" {
		client, err := store.DialRedis(cfg.Cache.RedisURL)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
			pingErr := client.Ping(ctx).Err()
			cancel()
			if pingErr != nil {
				logging.Warn(logger, "redis unreachable at startup, cache misses until it recovers", "error", pingErr)
			}
			logging.Info(logger, "view cache using redis")
			return store.Observe(store.NewRedisCache(client), "redis", logger, rec), client
		}
		logging.Warn(logger, "invalid REDIS_URL, using in-process cache", "error", err)
	}
	return store.Observe(store.NewMemoryCache(nil), "memory", logger, rec), nil
}
