package config

import (
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port              string
	PollInterval      Duration
	Timezone          string
	EnrichConcurrency int
	CORSOrigins       []string
	StatsAPI          StatsAPIConfig
	Cache             CacheConfig
	Metrics           MetricsConfig
	Log               LogConfig
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		Port:              envOrDefault(envPort, defaultPort),
		PollInterval:      durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Timezone:          envOrDefault(envTimezone, defaultTimezone),
		EnrichConcurrency: intEnvOrDefault(envEnrichConcurrency, defaultEnrichConcurrency),
		CORSOrigins:       splitList(envOrDefault(envCORSOrigins, defaultCORSOrigins)),
		StatsAPI:          loadStatsAPI(),
		Cache:             loadCache(),
		Metrics:           loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
