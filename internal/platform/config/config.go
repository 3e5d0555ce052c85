// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// StorageBackend selects the persistence adapter: "memory" or "postgres".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	// DatabaseURL is the Postgres connection string. Required when
	// StorageBackend is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrateOnStart applies embedded goose migrations before serving.
	// Only meaningful for the postgres backend.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`

	// WebBaseURL is the public frontend origin used in redirect targets.
	WebBaseURL string `env:"WEB_BASE_URL" envDefault:"http://localhost:3000"`

	// APIBaseURL is this server's public origin, embedded in confirmation links.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`

	// MailBackend selects the mail adapter: "smtp" or "log".
	MailBackend string `env:"MAIL_BACKEND" envDefault:"log"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// MailSenderName and MailSenderAddress form the From header on every
	// outgoing message.
	MailSenderName    string `env:"MAIL_SENDER_NAME" envDefault:"Trip Planner"`
	MailSenderAddress string `env:"MAIL_SENDER_ADDRESS" envDefault:"hello@planner.local"`

	// MailTimeout bounds a single mail dispatch so a hung transport cannot
	// block a confirmation fan-out indefinitely.
	MailTimeout time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat selects the slog handler: "text" (tint, for dev) or "json".
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}
	if cfg.MailBackend == "smtp" && cfg.SMTPHost == "" {
		return Config{}, errors.New("SMTP_HOST is required when MAIL_BACKEND=smtp")
	}
	return cfg, nil
}
