// Package config loads daemon settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the daemon reads at startup.
type Config struct {
	Bind          string        `env:"MASCOTD_BIND" envDefault:"127.0.0.1"`
	Port          int           `env:"MASCOTD_PORT" envDefault:"37780"`
	DBPath        string        `env:"MASCOTD_DB"`
	SweepInterval time.Duration `env:"MASCOTD_SWEEP_INTERVAL" envDefault:"5m"`
	Timezone      string        `env:"MASCOTD_TZ" envDefault:"America/Toronto"`
	WebhookURL    string        `env:"MASCOTD_WEBHOOK_URL"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive, got %s", cfg.SweepInterval)
	}
	return &cfg, nil
}

// ListenAddr is the host:port the HTTP server binds.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
