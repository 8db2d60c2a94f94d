// Package config defines service configuration and its layered loader.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// AllowedOrigins lists CORS origins for the browser calculator.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// MaxBatchSize caps the number of parameter sets per batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// MaxLeaderboardLimit caps GET /v1/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RequestTimeoutMS bounds each HTTP request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// Compression enables gzip responses.
	Compression bool `koanf:"compression"`

	// CatalogPath overrides the embedded catalog with a YAML file.
	CatalogPath string `koanf:"catalog_path"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// LatencyBucketsMS overrides the latency histogram buckets (milliseconds,
	// strictly increasing). Empty keeps the built-in buckets.
	LatencyBucketsMS []float64 `koanf:"latency_buckets_ms"`
}

// metricName matches a valid Prometheus name component.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		AllowedOrigins:      []string{"*"},
		MaxBatchSize:        100,
		MaxLeaderboardLimit: 100,
		RequestTimeoutMS:    5000,
		Compression:         true,
		MetricsNamespace:    "habitat",
		MetricsSubsystem:    "engine",
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive, got %d", ErrInvalidConfig, c.MaxLeaderboardLimit)
	case c.RequestTimeoutMS < 1:
		return fmt.Errorf("%w: request_timeout_ms must be positive, got %d", ErrInvalidConfig, c.RequestTimeoutMS)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if !metricName.MatchString(c.MetricsNamespace) {
		return fmt.Errorf("%w: metrics_namespace %q is not a valid metric name", ErrInvalidConfig, c.MetricsNamespace)
	}
	if !metricName.MatchString(c.MetricsSubsystem) {
		return fmt.Errorf("%w: metrics_subsystem %q is not a valid metric name", ErrInvalidConfig, c.MetricsSubsystem)
	}
	for i, b := range c.LatencyBucketsMS {
		if b <= 0 || (i > 0 && b <= c.LatencyBucketsMS[i-1]) {
			return fmt.Errorf("%w: latency_buckets_ms must be positive and strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}

// splitOrigins flattens comma-separated entries, as produced by env vars.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
