package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090")
	t.Setenv("JWT_SECRET", "dev-secret")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HealthPath", cfg.AppName)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"http://localhost:8090"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.RedisURL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	setBase(t)
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("AUTH_RATE_LIMIT", "not-a-number")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadProductionChecks(t *testing.T) {
	setBase(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setBase(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestSanitized(t *testing.T) {
	cfg := &Config{AppName: "HealthPath", JWTSecret: "secret", ResendAPIKey: "key", RedisURL: "redis://:pw@host"}
	safe := cfg.Sanitized()

	assert.Equal(t, "HealthPath", safe.AppName)
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.RedisURL)
}
