package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort      string
	GinMode         string
	LogLevel        string
	LogFormat       string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	RedisURL        string
	CacheTTL        time.Duration
	SessionTTL      time.Duration
	MaxUploadBytes  int64
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		UpstreamURL:     getEnv("UPSTREAM_GRAPHQL_URL", "http://localhost:4000/graphql"),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_SECONDS", 30)) * time.Second,
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
