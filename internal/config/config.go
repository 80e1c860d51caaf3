// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the binary understands.
type Config struct {
	Port       string `env:"PORT"                 envDefault:"8080"`
	DataSource string `env:"PORTFOLIO_DATA"       envDefault:"data/projects.json"`
	PrefsDB    string `env:"PORTFOLIO_PREFS_DB"`
	PrefsSalt  string `env:"PORTFOLIO_PREFS_SALT"`
	Env        string `env:"PORTFOLIO_ENV"        envDefault:"dev"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL"  envDefault:"info"`
	SiteName   string `env:"PORTFOLIO_SITE_NAME"  envDefault:"Portfolio"`
}

// Load parses the environment. A .env file, if present, has already been
// applied by godotenv/autoload in main.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	return cfg, nil
}

// Production reports whether PORTFOLIO_ENV is "prod" or "production".
func (c Config) Production() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Addr is the listen address.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
