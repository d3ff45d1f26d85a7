// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"context"
	"time"

	"github.com/okian/signup/internal/domain/model"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log line encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// LogFile optionally mirrors logs into a size-rotated file.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DocsEnabled serves /openapi.yaml and /api-docs.
	DocsEnabled bool `koanf:"docs_enabled"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// MetricsEnabled toggles metric recording; /metrics is served either way.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshMS is the gauge refresh period.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`

	// MetricsNamespace and MetricsSubsystem override the metric name parts
	// "signup" and "registry".
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsPrefix is prepended to every metric name when set.
	MetricsPrefix string `koanf:"metrics_prefix"`

	// MetricsHTTPBuckets and MetricsStoreBuckets replace the latency
	// histogram bounds, in milliseconds.
	MetricsHTTPBuckets  []float64 `koanf:"metrics_http_buckets"`
	MetricsStoreBuckets []float64 `koanf:"metrics_store_buckets"`

	// Instance is added as a constant "instance" label to every metric when set.
	Instance string `koanf:"instance"`

	// Activities replaces the built-in seed catalog when non-empty.
	Activities []Activity `koanf:"activities"`
}

// Activity is a seed catalog entry as written in the config file.
type Activity struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8000",
		DocsEnabled:       true,
		ShutdownTimeoutMS: 30_000,
		MetricsEnabled:    true,
		MetricsRefreshMS:  10_000,
	}
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// MetricsRefresh returns MetricsRefreshMS as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshMS) * time.Millisecond
}

// Catalog returns the seed activities: the configured list, or the default
// catalog when none is configured.
func (c *Config) Catalog() []model.Activity {
	if len(c.Activities) == 0 {
		return model.DefaultCatalog()
	}
	out := make([]model.Activity, 0, len(c.Activities))
	for _, a := range c.Activities {
		out = append(out, model.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		}.Clone())
	}
	return out
}
