package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, BackendMemory, cfg.DirectoryBackend)
	assert.Equal(t, BackendMemory, cfg.MarkerBackend)
	assert.Equal(t, time.Duration(0), cfg.MarkerTTL)
	assert.True(t, cfg.SeedDemoUsers)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DIRECTORY_BACKEND", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/bibliotech?sslmode=disable")
	t.Setenv("MARKER_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MARKER_TTL", "720h")
	t.Setenv("SEED_DEMO_USERS", "false")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, BackendPostgres, cfg.DirectoryBackend)
	assert.Equal(t, BackendRedis, cfg.MarkerBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 720*time.Hour, cfg.MarkerTTL)
	assert.False(t, cfg.SeedDemoUsers)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown directory": {"DIRECTORY_BACKEND": "mysql"},
		"postgres no dsn":   {"DIRECTORY_BACKEND": "postgres"},
		"unknown markers":   {"MARKER_BACKEND": "localstorage"},
		"negative ttl":      {"MARKER_TTL": "-1m"},
		"bad duration":      {"MARKER_TTL": "soon"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
