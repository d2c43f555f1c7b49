package config

// CacheConfig controls the view-model cache backend.
type CacheConfig struct {
	RedisURL     string // empty selects the in-process cache
	StandingsTTL Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		RedisURL:     envOrDefault(envRedisURL, ""),
		StandingsTTL: durationEnvOrDefault(envStandingsTTL, defaultStandingsTTL),
	}
}
