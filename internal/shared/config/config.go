package config

import (
	"os"
	"strconv"
	"strings"

	"resume-matcher/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	CORSAllowOrigin      []string
	MaxUploadBytes       int64
	LogLevel             string
	LogFormat            string
	AnalyzeRatePerMinute float64
	AnalyzeBurst         int
}

// Load reads configuration from environment variables with sensible defaults.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env", "cmd/.env"}
	}
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(envFiles...)

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		MaxUploadBytes:       getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		AnalyzeRatePerMinute: getFloat("ANALYZE_RATE_PER_MINUTE", 30),
		AnalyzeBurst:         int(getInt64("ANALYZE_BURST", 5)),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return v
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
	default:
		return "dev"
	}
}
