package config

import (
	"os"
	"time"
)

// DefaultJWTSecret is the insecure fallback used for local development.
// main refuses to start with it when APP_ENV=production.
const DefaultJWTSecret = "dev_secret_key"

type Config struct {
	// Database. A postgres:// URL selects PostgreSQL, anything else is
	// treated as a SQLite file path.
	DatabaseURL string

	// Auth
	JWTSecret   string
	TokenExpiry time.Duration

	// Registering with this secret grants the admin role. Empty disables
	// the secret-based grant entirely.
	AdminSecret string

	// Server
	Port        string
	CORSOrigins string
	Environment string
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "bragboard.db"),
		JWTSecret:   getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenExpiry: parseDuration(getEnv("TOKEN_EXPIRY", "24h")),
		AdminSecret: getEnv("ADMIN_SECRET", ""),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		Environment: getEnv("APP_ENV", "development"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
