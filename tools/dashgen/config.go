package main

import "errors"

// KnownMetrics is the set of metric names exported by the offer catalog
// client plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Catalog API metrics.
	"offers_catalog_requests_total":           true,
	"offers_catalog_request_duration_seconds": true,
	"offers_catalog_retries_total":            true,

	// User token metrics.
	"offers_token_fetches_total": true,

	// Search history metrics.
	"offers_history_persist_failures_total": true,
	"offers_history_entries":                true,

	// Recording rules.
	"offers:catalog_requests:rate5m":         true,
	"offers:catalog_errors:rate5m":           true,
	"offers:catalog_retries:rate5m":          true,
	"offers:token_errors:rate5m":             true,
	"offers:history_persist_failures:rate5m": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
