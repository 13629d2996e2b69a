// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the application reads from the environment.
type Config struct {
	GeminiAPIKey string        `env:"GEMINI_API_KEY,required,notEmpty"`
	Language     string        `env:"TABLETOP_LANGUAGE" envDefault:"en"`
	DataDir      string        `env:"TABLETOP_DATA_DIR" envDefault:".tabletop"`
	Debug        bool          `env:"TABLETOP_DEBUG" envDefault:"false"`
	Timeout      time.Duration `env:"TABLETOP_NARRATOR_TIMEOUT" envDefault:"60s"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SaveDir is where session saves live under the data directory.
func (c *Config) SaveDir() string {
	return filepath.Join(c.DataDir, "saves")
}

// SettingsPath is the location of the persistent settings database.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.db")
}
