// Package config handles loading and validating runtime configuration for the
// Soccer League API. Configuration values (the database URL, HTTP port, JWT
// secret, token lifetime) are read from environment variables rather than
// being hardcoded, so the same binary runs in dev, staging, and production
// with nothing but different env vars.
package config

import (
	"os"
	"time"

	// godotenv reads a .env file and loads its key=value pairs into the
	// process environment. Convenient in development; in production the real
	// environment variables are already set by the deployment platform.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port        string        // TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL string        // PostgreSQL connection string
	JWTSecret   string        // HMAC secret used to sign and verify session tokens
	TokenTTL    time.Duration // How long an issued session token stays valid
	Env         string        // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. It first tries to load a .env file for local development; a missing
// .env is fine, so that error is intentionally discarded.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	// Session tokens default to one hour. TOKEN_TTL accepts any Go duration
	// string ("90m", "2h", ...); an unparsable value falls back to the default
	// rather than silently issuing tokens that never expire.
	ttl := time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"), // Required — server fails to start without it
		JWTSecret:   os.Getenv("JWT_SECRET"),   // Required — tokens cannot be issued or verified without it
		TokenTTL:    ttl,
		Env:         env,
	}
}
