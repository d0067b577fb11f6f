package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Environment selection: "development" or "production". The default
	// store path depends on it so a dev session never touches real data.
	AppEnv string

	// Document store
	StorePath string

	// Logging
	LogLevel  string
	LogFormat string

	// Report export
	ExportDir string

	// Derived-metrics response cache
	SummaryCacheTTL time.Duration
}

func Load() *Config {
	appEnv := getEnv("APP_ENV", "production")

	cfg := &Config{
		Port:            getEnv("PORT", "8081"),
		AppEnv:          appEnv,
		StorePath:       getEnv("STORE_PATH", defaultStorePath(appEnv)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ExportDir:       getEnv("EXPORT_DIR", "./exports"),
		SummaryCacheTTL: getEnvDuration("SUMMARY_CACHE_TTL", 30*time.Second),
	}

	return cfg
}

// defaultStorePath keeps development data separate from the real store.
// The path stays an opaque string for the storage layer.
func defaultStorePath(appEnv string) string {
	if appEnv == "development" {
		return "./data/bilancio-dev.db"
	}
	return "./data/bilancio.db"
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate environment
	if c.AppEnv != "development" && c.AppEnv != "production" {
		errors = append(errors, fmt.Sprintf("invalid app env '%s': must be 'development' or 'production'", c.AppEnv))
	}

	// Validate store path
	if c.StorePath == "" {
		errors = append(errors, "store path cannot be empty")
	}

	// Validate logging
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Validate export directory
	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	// Validate cache TTL
	if c.SummaryCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid summary cache ttl %v: must be at least 1 second", c.SummaryCacheTTL))
	} else if c.SummaryCacheTTL > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid summary cache ttl %v: must be at most 1 hour", c.SummaryCacheTTL))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
