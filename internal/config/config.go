// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible site record fallback store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Image/LLM generation keys. GeminiKey is resolved from GEMINI_API_KEY
	// with API_KEY as the fallback name (older deployments used API_KEY).
	GeminiKeyPrimary  string
	GeminiKeyFallback string
	OpenAIKey         string

	// Stripe payment verification
	StripeSecretKey string

	// S3-compatible object storage
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// Bucket for generated site images.
	StorageBucket string

	// Bcrypt hash of the admin API token. Empty disables admin routes.
	AdminTokenHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "siteforge"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "siteforge"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		GeminiKeyPrimary:  os.Getenv("GEMINI_API_KEY"),
		GeminiKeyFallback: os.Getenv("API_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		StorageBucket: envOrDefault("STORAGE_BUCKET", "generated-images"),

		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// GeminiKey returns the image-generation API key, preferring GEMINI_API_KEY
// over the legacy API_KEY variable.
func (c *Config) GeminiKey() string {
	if c.GeminiKeyPrimary != "" {
		return c.GeminiKeyPrimary
	}
	return c.GeminiKeyFallback
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
