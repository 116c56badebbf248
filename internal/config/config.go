package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	// Remote API
	APIURL  string
	Timeout time.Duration

	// Outbound request throttle, requests per minute. 0 disables it.
	RequestsPerMinute int

	// Local state
	DataDir string

	// Display
	DefaultCurrency string

	Env string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("EKSTRE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EKSTRE_TIMEOUT: %w", err)
	}

	rpm, err := strconv.Atoi(getEnv("EKSTRE_RATE_LIMIT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid EKSTRE_RATE_LIMIT: %w", err)
	}

	cfg := &Config{
		APIURL:            getEnv("EKSTRE_API_URL", "http://localhost:8000"),
		Timeout:           timeout,
		RequestsPerMinute: rpm,
		DataDir:           getEnv("EKSTRE_DATA_DIR", defaultDataDir()),
		DefaultCurrency:   getEnv("EKSTRE_DEFAULT_CURRENCY", ""),
		Env:               getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("EKSTRE_API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("EKSTRE_TIMEOUT must be positive")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("EKSTRE_RATE_LIMIT must not be negative")
	}
	if c.DataDir == "" {
		return fmt.Errorf("EKSTRE_DATA_DIR is required")
	}
	return nil
}

// SessionPath is the location of the durable session database.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.db")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ekstre")
	}
	return ".ekstre"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
