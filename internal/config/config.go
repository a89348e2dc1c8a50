package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port            int
	Env             string
	ShutdownTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Upstream stats API
	UpstreamAPIRoot    string
	UpstreamTimeout    time.Duration
	UpstreamMaxRetries int

	// Shared mode store; empty keeps the mode in process
	RedisURL string
	ModeKey  string
	ModeTTL  time.Duration

	// Leaderboard
	LeaderboardMatches int
	FetchConcurrency   int
}

// Load loads configuration from environment variables.
// It returns an error if a set value is unusable.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvInt("PORT", 8080),
		Env:             getEnv("ENV", "development"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		UpstreamAPIRoot:    getEnv("UPSTREAM_API_ROOT", "https://tombrady.fireballs.me/api/"),
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamMaxRetries: getEnvInt("UPSTREAM_MAX_RETRIES", 2),

		RedisURL: getEnv("REDIS_URL", ""),
		ModeKey:  getEnv("MODE_KEY", "brady:stat_mode"),
		ModeTTL:  getEnvDuration("MODE_TTL", 12*time.Hour),

		LeaderboardMatches: getEnvInt("LEADERBOARD_MATCHES", 20),
		FetchConcurrency:   getEnvInt("FETCH_CONCURRENCY", 4),
	}

	// CORS
	cfg.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", "http://localhost:3000")

	u, err := url.Parse(cfg.UpstreamAPIRoot)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid UPSTREAM_API_ROOT: %q", cfg.UpstreamAPIRoot)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}

	return cfg, nil
}

// IsProduction reports whether ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, fallback), ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
