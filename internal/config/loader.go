package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// listKeys are config keys whose env values hold comma-separated lists.
var listKeys = map[string]bool{
	"metrics_http_buckets":  true,
	"metrics_store_buckets": true,
}

var metricNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Environment variable names.
const (
	envPrefix     = "SIGNUP_"
	envConfigFile = "SIGNUP_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SIGNUP_CONFIG is set
//  3. env (prefix SIGNUP_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like SIGNUP_LOG_LEVEL -> log_level (flat keys).
	// Underscores are preserved to match koanf tags on the struct.
	// Bucket lists are comma separated: SIGNUP_METRICS_HTTP_BUCKETS=1,5,25.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the service cannot run without.
func (c *Config) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ShutdownTimeoutMS <= 0 {
		return fmt.Errorf("%w: shutdown_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.MetricsRefreshMS <= 0 {
		return fmt.Errorf("%w: metrics_refresh_ms must be positive", ErrInvalidConfig)
	}
	for key, name := range map[string]string{
		"metrics_namespace": c.MetricsNamespace,
		"metrics_subsystem": c.MetricsSubsystem,
		"metrics_prefix":    c.MetricsPrefix,
	} {
		if name != "" && !metricNameRe.MatchString(name) {
			return fmt.Errorf("%w: %s %q is not a valid metric name part", ErrInvalidConfig, key, name)
		}
	}
	if err := validateBuckets("metrics_http_buckets", c.MetricsHTTPBuckets); err != nil {
		return err
	}
	if err := validateBuckets("metrics_store_buckets", c.MetricsStoreBuckets); err != nil {
		return err
	}

	names := make(map[string]bool, len(c.Activities))
	for i, a := range c.Activities {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: activities[%d]: name must not be empty", ErrInvalidConfig, i)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: activities[%d]: duplicate activity %q", ErrInvalidConfig, i, a.Name)
		}
		names[a.Name] = true

		emails := make(map[string]bool, len(a.Participants))
		for _, p := range a.Participants {
			if emails[p] {
				return fmt.Errorf("%w: activity %q: duplicate participant %q", ErrInvalidConfig, a.Name, p)
			}
			emails[p] = true
		}
	}
	return nil
}

// validateBuckets rejects histogram bounds that are not strictly increasing.
// An empty list keeps the built-in buckets.
func validateBuckets(key string, buckets []float64) error {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return fmt.Errorf("%w: %s must be strictly increasing", ErrInvalidConfig, key)
		}
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
