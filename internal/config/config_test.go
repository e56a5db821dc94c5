package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "SQLITE_PATH",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "SESSION_SECRET", "COOKIE_SECURE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "./smartpletude.db", cfg.SQLitePath)
	assert.Empty(t, cfg.RedisAddr, "Redis must be off by default")
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/smartpletude")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("SESSION_SECRET", "high-entropy-secret")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddress())
	assert.Equal(t, "postgres://app:pw@db:5432/smartpletude", cfg.DatabaseURL)
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr, "default Redis port applies")
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestLoad_RedisPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6390")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6390", cfg.RedisAddr)
}
