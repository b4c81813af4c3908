package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", ":2222")
	cfg := Load()

	assert.Equal(t, ":2222", cfg.Server.Port)
	assert.Equal(t, "pg", cfg.Database.Driver)
	assert.Equal(t, "queue:notifications", cfg.Queue.Key)
	assert.Equal(t, 3, cfg.Queue.MaxAttempts)
	assert.Equal(t, uint32(32), cfg.Auth.Argon.KeyLen)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SERVER_READ_TIME_OUT", "30")
	t.Setenv("QUEUE_POLL_TIMEOUT", "250ms")

	cfg := Load()

	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Cors.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Queue.PollTimeout)
}

func TestEnvParsersFallBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_INT", "ten")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")

	assert.Equal(t, 10, getEnvAsInt("TEST_INT", 10))
	assert.True(t, getEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, "fallback", getEnvAsString("TEST_UNSET_KEY", "fallback"))
}
