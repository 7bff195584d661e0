// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file holding restaurants and dishes.
	DBPath string `koanf:"db_path"`

	// StrictParams rejects malformed flags and ids with 400. When false,
	// raw values are passed to the store unchanged.
	StrictParams bool `koanf:"strict_params"`

	// ReadTimeoutMS and WriteTimeoutMS bound a single HTTP exchange.
	ReadTimeoutMS  int `koanf:"read_timeout_ms"`
	WriteTimeoutMS int `koanf:"write_timeout_ms"`

	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// MetricsNamespace and MetricsSubsystem prefix every exported series,
	// as in foodie_catalog_requests_total.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	// MetricsBuckets replaces the latency histogram buckets (milliseconds).
	// Empty keeps the Prometheus defaults.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`
	// MetricsLabels are constant labels attached to every series.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":3000",
		DBPath:            "./database1.sqlite",
		StrictParams:      true,
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		ShutdownTimeoutMS: 10_000,
		MetricsNamespace:  "foodie",
		MetricsSubsystem:  "catalog",
	}
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
