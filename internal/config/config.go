// Package config provides configuration for the application.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret signs session cookies when SESSION_SECRET is unset.
// Acceptable for local development only; main warns loudly when it is used.
const DefaultSessionSecret = "dev-session-secret-change-me"

// Config holds all runtime configuration, sourced from environment variables
// once at startup and passed by reference into constructors.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DatabaseURL is a Postgres connection string. When empty, the embedded
	// SQLite store at SQLitePath is used instead.
	DatabaseURL string

	// SQLitePath is the embedded store location.
	SQLitePath string

	// RedisAddr is host:port of the session/cache Redis. Empty disables
	// Redis; sessions then fall back to the SQL store.
	RedisAddr string

	// RedisPassword authenticates the Redis connection.
	RedisPassword string

	// SessionSecret signs the session cookie. Must be high entropy in any
	// real deployment.
	SessionSecret string

	// CookieSecure marks the session cookie HTTPS-only.
	CookieSecure bool
}

// Load reads configuration from the environment.
// A .env file is honored when present but never required.
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:    fallback(os.Getenv("SQLITE_PATH"), "./smartpletude.db"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionSecret: fallback(os.Getenv("SESSION_SECRET"), DefaultSessionSecret),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}

	if host := strings.TrimSpace(os.Getenv("REDIS_HOST")); host != "" {
		cfg.RedisAddr = host + ":" + fallback(os.Getenv("REDIS_PORT"), "6379")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// UsesDefaultSecret reports whether the cookie-signing secret is still the
// development default.
func (c *Config) UsesDefaultSecret() bool {
	return c.SessionSecret == DefaultSessionSecret
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
