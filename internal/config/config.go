// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/ocelview/internal/logging"
)

// Environments accepted in OCELVIEW_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost      string        `env:"OCELVIEW_SERVER_HOST" envDefault:"localhost"`
	ServerPort      int           `env:"OCELVIEW_SERVER_PORT" envDefault:"8080"`
	Env             string        `env:"OCELVIEW_ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"OCELVIEW_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging configuration
	LogLevel      string `env:"OCELVIEW_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"OCELVIEW_LOG_FILE"`                        // Optional rotated log file
	LogMaxSizeMB  int    `env:"OCELVIEW_LOG_MAX_SIZE_MB" envDefault:"50"` // Size before rotation
	LogMaxBackups int    `env:"OCELVIEW_LOG_MAX_BACKUPS" envDefault:"3"`  // Rotated files kept

	// OCEL API exposed to plugin components
	APIBaseURL   string  `env:"OCELVIEW_API_BASE_URL" envDefault:"http://localhost:8000"`
	APIRateLimit float64 `env:"OCELVIEW_API_RATE_LIMIT" envDefault:"10"` // Requests per second per client
	APIRateBurst int     `env:"OCELVIEW_API_RATE_BURST" envDefault:"20"`

	// TrustProxy takes the client address from X-Real-IP / X-Forwarded-For.
	// Enable only behind a reverse proxy that sets these headers.
	TrustProxy bool `env:"OCELVIEW_TRUST_PROXY" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Logging returns the logger options.
func (c Config) Logging() logging.Options {
	return logging.Options{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("OCELVIEW_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort))
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("OCELVIEW_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("OCELVIEW_LOG_LEVEL: %w", err))
	}
	if c.LogFile != "" && (c.LogMaxSizeMB < 1 || c.LogMaxBackups < 0) {
		errs = append(errs, errors.New("OCELVIEW_LOG_MAX_SIZE_MB must be positive and OCELVIEW_LOG_MAX_BACKUPS not negative"))
	}
	if u, err := url.Parse(c.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("OCELVIEW_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL))
	}
	if c.APIRateLimit <= 0 || c.APIRateBurst < 1 {
		errs = append(errs, errors.New("OCELVIEW_API_RATE_LIMIT and OCELVIEW_API_RATE_BURST must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("OCELVIEW_SHUTDOWN_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}
