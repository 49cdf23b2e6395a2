package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the environment-sourced settings for both the
// measurement HTTP API (cmd/api) and the objmeasure CLI (cmd/objmeasure).
// LoadFromEnv applies defaults and validates them directly. In
// cmd/objmeasure, the serve subcommand loads Config this way through
// the container; the measure subcommand takes its settings from its own
// flags and does not read Config.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	MeasureTimeout     time.Duration
	MaxRequestBodySize int64

	// DefaultConnectivity is the chain-code/convex-hull connectivity
	// used when a request does not specify one. Defaults to 2, matching
	// internal/measure.MeasurementTool's own fallback.
	DefaultConnectivity int

	// WorkerPoolSize bounds the goroutines used to run independent
	// ImageBased plug-ins concurrently. 0 means "use NumCPU".
	WorkerPoolSize int

	// RunHistoryDSN is the modernc.org/sqlite data source for run
	// metadata (internal/repository) — never the measurement table
	// itself.
	RunHistoryDSN string

	// AzureContainerURL, if set, is used by internal/storage's Azure
	// blob fetcher instead of the plain HTTP fetcher.
	AzureContainerURL string

	// MetricsEnabled toggles the Prometheus observer.
	MetricsEnabled bool
}

// ServerAddress joins Host and Port for net/http.Server.Addr.
func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// LoadFromEnv reads configuration from the environment, applying
// defaults and validating the result.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvOrDefault("PORT", "8080"),
		RequestTimeout:      parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:   parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MeasureTimeout:      parseDurationOrDefault("MEASURE_TIMEOUT", 30*time.Second),
		MaxRequestBodySize:  parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 25*1024*1024), // 25MB
		DefaultConnectivity: int(parseIntOrDefault("DEFAULT_CONNECTIVITY", 2)),
		WorkerPoolSize:      int(parseIntOrDefault("WORKER_POOL_SIZE", 0)),
		RunHistoryDSN:       getEnvOrDefault("RUN_HISTORY_DSN", "file:objmeasure-runs.db?cache=shared"),
		AzureContainerURL:   os.Getenv("AZURE_CONTAINER_URL"),
		MetricsEnabled:      parseBoolOrDefault("METRICS_ENABLED", true),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.MeasureTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, measure=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.MeasureTimeout)
	}
	if cfg.DefaultConnectivity != 2 && cfg.DefaultConnectivity != 4 && cfg.DefaultConnectivity != 8 {
		return nil, fmt.Errorf("DEFAULT_CONNECTIVITY must be 2, 4 or 8 (got %d)", cfg.DefaultConnectivity)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
