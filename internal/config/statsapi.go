package config

// StatsAPIConfig controls how we talk to the MLB stats API.
type StatsAPIConfig struct {
	BaseURL string
	Timeout Duration
	// Retries is the number of extra attempts for idempotent GETs; 0 disables retry.
	Retries int
	Backoff Duration
}

func loadStatsAPI() StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL: envOrDefault(envStatsBaseURL, defaultStatsBaseURL),
		Timeout: durationEnvOrDefault(envStatsTimeout, defaultStatsTimeout),
		Retries: nonNegativeIntEnvOrDefault(envStatsRetries, defaultStatsRetries),
		Backoff: durationEnvOrDefault(envStatsBackoff, defaultStatsBackoff),
	}
}
