package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EKSTRE_API_URL", "")
	t.Setenv("EKSTRE_TIMEOUT", "")
	t.Setenv("EKSTRE_RATE_LIMIT", "")
	t.Setenv("EKSTRE_DATA_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.RequestsPerMinute)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EKSTRE_API_URL", "https://finans.example.com")
	t.Setenv("EKSTRE_TIMEOUT", "5s")
	t.Setenv("EKSTRE_RATE_LIMIT", "120")
	t.Setenv("EKSTRE_DATA_DIR", "/tmp/ekstre-test")
	t.Setenv("EKSTRE_DEFAULT_CURRENCY", "TRY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://finans.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 120, cfg.RequestsPerMinute)
	assert.Equal(t, "/tmp/ekstre-test", cfg.DataDir)
	assert.Equal(t, "TRY", cfg.DefaultCurrency)
	assert.Equal(t, "/tmp/ekstre-test/session.db", cfg.SessionPath())
}

func TestLoad_InvalidURL(t *testing.T) {
	t.Setenv("EKSTRE_API_URL", "not a url")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("EKSTRE_API_URL", "http://localhost:8000")
	t.Setenv("EKSTRE_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeRateLimit(t *testing.T) {
	t.Setenv("EKSTRE_API_URL", "http://localhost:8000")
	t.Setenv("EKSTRE_TIMEOUT", "30s")
	t.Setenv("EKSTRE_RATE_LIMIT", "-1")
	_, err := Load()
	assert.Error(t, err)
}
