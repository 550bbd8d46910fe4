// Package config loads application configuration from environment
// variables, optionally read from a .env file first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the web server.
type Config struct {
	Env              string // APP_ENV: "development" or "production"
	Port             string // APP_PORT
	DatabaseURL      string // DATABASE_URL, mysql or sqlite
	AllowOverbooking bool   // BOOKING_ALLOW_OVERBOOK
	CSRFEnabled      bool   // CSRF_ENABLED
	RabbitURL        string // RABBITMQ_URL or AMQP_URL; empty disables events
	RateLimit        RateLimitConfig
}

// Production reports whether the app runs with APP_ENV=production.
func (c Config) Production() bool { return c.Env == "production" }

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set are not overridden.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the configuration.  DATABASE_URL is required.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Env:              envStr("APP_ENV", "development"),
		Port:             envStr("APP_PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AllowOverbooking: envBool("BOOKING_ALLOW_OVERBOOK", false),
		CSRFEnabled:      envBool("CSRF_ENABLED", true),
		RabbitURL:        envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		RateLimit:        LoadRateLimitConfig(),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("missing required env var: DATABASE_URL")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid APP_PORT %q", cfg.Port)
	}
	return cfg, nil
}
