package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DATA_SOURCE", "CONFIRMATION_WINDOW",
		"SESSION_IDLE_TTL", "CLINIC_TIMEZONE", "VERIFY_EMAIL_DOMAIN", "REDIS_DB",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DataSourceMemory, cfg.DataSource)
	assert.Equal(t, 5*time.Second, cfg.ConfirmationWindow)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, "UTC", cfg.ClinicTimezone)
	assert.False(t, cfg.VerifyEmailDomain)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_SOURCE", "Redis")
	t.Setenv("CONFIRMATION_WINDOW", "2s")
	t.Setenv("SESSION_IDLE_TTL", "1m")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, DataSourceRedis, cfg.DataSource)
	assert.Equal(t, 2*time.Second, cfg.ConfirmationWindow)
	assert.Equal(t, time.Minute, cfg.SessionIdleTTL)
	assert.True(t, cfg.VerifyEmailDomain)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CONFIRMATION_WINDOW", "soon")
	t.Setenv("REDIS_DB", "x")

	cfg := FromEnv()

	assert.Equal(t, 5*time.Second, cfg.ConfirmationWindow)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestValidate(t *testing.T) {
	cfg := FromEnv()

	cfg.DataSource = "mongo"
	assert.Error(t, cfg.Validate())

	cfg.DataSource = DataSourcePostgres
	cfg.ConfirmationWindow = 0
	assert.Error(t, cfg.Validate())
}
