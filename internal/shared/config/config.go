package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"job-assistant/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	WebPort         string
	Env             string
	CORSAllowOrigin []string

	AnalysisAPIURL  string
	AnalysisTimeout time.Duration
	MaxUploadBytes  int64

	RedisURL        string
	CacheTTL        time.Duration
	CacheMaxEntries int

	RateLimitRPS   float64
	RateLimitBurst int

	SessionTTL  time.Duration
	MaxSessions int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8000"),
		WebPort:         getEnv("WEB_PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:8080")),
		AnalysisAPIURL:  normalizeBaseURL(getEnv("ANALYSIS_API_URL", "http://localhost:8000/api/resume/")),
		AnalysisTimeout: getEnvDuration("ANALYSIS_TIMEOUT", 60*time.Second),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 15*time.Minute),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 500),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 5),
		SessionTTL:      getEnvDuration("SESSION_TTL", 30*time.Minute),
		MaxSessions:     getEnvInt("SESSION_MAX", 1000),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw})
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f <= 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw})
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw})
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeBaseURL guarantees the trailing slash the client joins paths onto.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}
