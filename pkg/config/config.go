// Package config provides the configuration surface for repool hosts. It
// defines one Config structure covering the pooling defaults, the catalog
// location, and logging, plus a YAML loader with environment-variable
// substitution.
//
// Example usage:
//
//	cfg := config.New()
//	if err := config.Load("repool.yaml", cfg); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
)

// Config is the host-facing configuration for a pooling setup. It replaces
// the process-wide mutable default that a pre-warm fallback would otherwise
// be: the value is threaded explicitly into every pool the host constructs.
type Config struct {
	// DefaultPrewarm is the pre-warm count applied to pools constructed
	// with a negative requested count.
	DefaultPrewarm int `yaml:"default_prewarm" json:"default_prewarm"`

	// TrackActive enables active rosters on pools created lazily by the
	// registry.
	TrackActive bool `yaml:"track_active" json:"track_active"`

	// CatalogPath is the prototype catalog location handed to the registry.
	CatalogPath string `yaml:"catalog_path" json:"catalog_path"`

	// Metrics enables prometheus instrumentation on registry-created pools.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Encoding selects json or console output
	Encoding string `yaml:"encoding" json:"encoding"`
	// Development enables colored, stack-traced development output
	Development bool `yaml:"development" json:"development"`
}

// New returns a Config with production defaults.
func New() *Config {
	return &Config{
		DefaultPrewarm: 16,
		TrackActive:    true,
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks the configuration for values the engine cannot honor.
func (c *Config) Validate() error {
	if c.DefaultPrewarm < 0 {
		return fmt.Errorf("default_prewarm must be non-negative, got %d", c.DefaultPrewarm)
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.encoding must be json or console, got %q", c.Logging.Encoding)
	}
	return nil
}
