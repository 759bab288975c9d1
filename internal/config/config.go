package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Usage store backends
const (
	UsageStoreFile  = "file"
	UsageStoreRedis = "redis"
)

// Config holds application configuration
type Config struct {
	DatabaseURL        string
	ServerPort         string
	UsageStore         string
	UsageFile          string
	RedisURL           string
	RedisUsageKey      string
	CatalogPath        string
	CORSAllowedOrigins string
	RateLimit          string
	EnableHSTS         bool
	ServerDebugMode    bool
	LogFormat          string
	OTELEnabled        bool
	OTELEndpoint       string
	MigrationsPath     string
	AutoMigrate        bool
	RequestTimeout     time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom loads configuration through the given lookup function.
// Unset variables must be reported as the empty string.
func LoadFrom(getenv func(string) string) (*Config, error) {
	env := source(getenv)
	cfg := &Config{
		DatabaseURL:        env.getEnv("DATABASE_URL", ""),
		ServerPort:         env.getEnv("SERVER_PORT", "9090"),
		UsageStore:         env.getEnv("USAGE_STORE", UsageStoreFile),
		UsageFile:          env.getEnv("USAGE_FILE", "usersData.json"),
		RedisURL:           env.getEnv("REDIS_URL", ""),
		RedisUsageKey:      env.getEnv("REDIS_USAGE_KEY", "datenight:usage"),
		CatalogPath:        env.getEnv("CATALOG_PATH", ""),
		CORSAllowedOrigins: env.getEnv("CORS_ALLOWED_ORIGINS", "*"),
		RateLimit:          env.getEnv("RATE_LIMIT", "20-S"),
		EnableHSTS:         env.getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode:    env.getEnvBool("SERVER_DEBUG_MODE", false),
		LogFormat:          env.getEnv("LOG_FORMAT", "json"),
		OTELEnabled:        env.getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:       env.getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MigrationsPath:     env.getEnv("MIGRATIONS_PATH", "migrations"),
		AutoMigrate:        env.getEnvBool("AUTO_MIGRATE", false),
		RequestTimeout:     env.getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}

	switch cfg.UsageStore {
	case UsageStoreFile:
	case UsageStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when USAGE_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("invalid USAGE_STORE %q (must be %q or %q)", cfg.UsageStore, UsageStoreFile, UsageStoreRedis)
	}

	if cfg.AutoMigrate && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when AUTO_MIGRATE is enabled")
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	return cfg, nil
}

// DatabaseEnabled reports whether the idea repository routes should be mounted
func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != ""
}

type source func(string) string

func (s source) getEnv(key, defaultValue string) string {
	if value := s(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getEnvBool(key string, defaultValue bool) bool {
	if value := s(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func (s source) getEnvInt(key string, defaultValue int) int {
	if value := s(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (s source) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := s(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare integers are seconds
		if secs := s.getEnvInt(key, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
