// Package config handles loading and validating the client configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL points at the local mock catalog (tools/mock-catalog).
const DefaultBaseURL = "http://localhost:8089/"

// MaxHistoryEntries is the upper bound for history.max_entries.
const MaxHistoryEntries = 10

// Config is the top-level client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	User    UserConfig    `yaml:"user"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig defines the catalog API endpoint and transport settings.
type APIConfig struct {
	BaseURL   string          `yaml:"base_url"`
	APIKey    string          `yaml:"api_key"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Retry     RetryConfig     `yaml:"retry"`
}

// RateLimitConfig defines client-side request rate limiting.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// RetryConfig defines retries for connection failures and 5xx responses.
type RetryConfig struct {
	Attempts uint          `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
}

// UserConfig defines how the user token is obtained.
type UserConfig struct {
	// Token skips device registration when set.
	Token    string `yaml:"token"`
	DeviceID string `yaml:"device_id"`
}

// HistoryConfig defines search history persistence.
type HistoryConfig struct {
	Path       string `yaml:"path"` // default: <user cache dir>/offer-catalog/searchHistory.json
	MaxEntries int    `yaml:"max_entries"` // 1-10, default 10
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return Finalize(cfg)
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Finalize applies defaults to cfg and validates it. Use it after overriding
// fields from flags or the environment.
func Finalize(cfg *Config) (*Config, error) {
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyHistoryDefaults(&cfg.History)
	applyLoggingDefaults(&cfg.Logging)
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = DefaultBaseURL
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.RateLimit.PerSecond == 0 {
		a.RateLimit.PerSecond = 5.0
	}
	if a.RateLimit.Burst == 0 {
		a.RateLimit.Burst = 10
	}
	if a.Retry.Attempts == 0 {
		a.Retry.Attempts = 3
	}
	if a.Retry.Delay == 0 {
		a.Retry.Delay = 200 * time.Millisecond
	}
}

func applyHistoryDefaults(h *HistoryConfig) {
	if h.MaxEntries == 0 {
		h.MaxEntries = MaxHistoryEntries
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL (got %q)", cfg.API.BaseURL))
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
	}
	if cfg.API.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.per_second must not be negative"))
	}
	if cfg.API.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.burst must not be negative"))
	}
	if cfg.History.MaxEntries < 0 || cfg.History.MaxEntries > MaxHistoryEntries {
		errs = append(errs, fmt.Errorf(
			"history.max_entries must be between 0 and %d (got %d)",
			MaxHistoryEntries, cfg.History.MaxEntries,
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
