// Package config loads runner configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the vossim runner configuration. Every field has a
// sensible default so a bare invocation runs out of the box.
type Config struct {
	Raids     int    `env:"VOSSIM_RAIDS" envDefault:"100"`
	Foxes     int    `env:"VOSSIM_FOXES" envDefault:"4"`
	Seed      uint64 `env:"VOSSIM_SEED" envDefault:"0"`
	DBPath    string `env:"VOSSIM_DB_PATH" envDefault:"vossim.db"`
	LogLevel  string `env:"VOSSIM_LOG_LEVEL" envDefault:"info"`
	LogJSON   bool   `env:"VOSSIM_LOG_JSON" envDefault:"false"`
	NeverPass bool   `env:"VOSSIM_NEVER_PASS" envDefault:"false"`
}

// Load parses and validates the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Raids < 1 {
		return fmt.Errorf("raids must be positive, got %d", c.Raids)
	}
	if c.Foxes < 2 || c.Foxes > 8 {
		return fmt.Errorf("foxes must be between 2 and 8, got %d", c.Foxes)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	return nil
}
