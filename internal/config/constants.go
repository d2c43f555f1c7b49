package config

import "time"

const (
	envPort              = "PORT"
	envPollInterval      = "POLL_INTERVAL"
	envTimezone          = "APP_TIMEZONE"
	envStatsBaseURL      = "STATSAPI_BASE_URL"
	envStatsTimeout      = "STATSAPI_TIMEOUT"
	envStatsRetries      = "STATSAPI_RETRIES"
	envStatsBackoff      = "STATSAPI_BACKOFF"
	envEnrichConcurrency = "ENRICH_CONCURRENCY"
	envStandingsTTL      = "STANDINGS_CACHE_TTL"
	envRedisURL          = "REDIS_URL"
	envCORSOrigins       = "CORS_ORIGINS"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"

	defaultPort         = "4000"
	defaultPollInterval = Duration(time.Minute)
	defaultTimezone     = "America/New_York"
	defaultStatsBaseURL = "https://statsapi.mlb.com"
	// Per request.
	defaultStatsTimeout      = 12 * Duration(time.Second)
	defaultStatsRetries      = 2
	defaultStatsBackoff      = 200 * Duration(time.Millisecond)
	defaultEnrichConcurrency = 4
	defaultStandingsTTL      = 10 * Duration(time.Minute)
	defaultCORSOrigins       = "*"
	defaultMetricsPort       = "9090"
	defaultServiceName       = "mlb-scoreboard-service"
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
)
