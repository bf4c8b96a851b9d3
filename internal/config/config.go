package config

import (
	"github.com/caarlos0/env/v9"
)

// Config holds all runtime settings, populated from the environment.
type Config struct {
	Port    string `env:"PORT" envDefault:"8008"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	DBPath  string `env:"DB_PATH" envDefault:"fleet-management.db"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"development-insecure-secret-change-me"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:"fleet-management-api"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"fleet-management-clients"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`

	// DriverAppURL is linked in trip assignment emails.
	DriverAppURL string `env:"DRIVER_APP_URL" envDefault:"http://localhost:3000"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
