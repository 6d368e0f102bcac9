package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_ParsesListsAndInts(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.LoginRateLimit)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", SessionSecret: defaultSessionSecret, GinMode: "debug"}
	require.NoError(t, cfg.Validate())

	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg.DBDriver = "postgres"
	cfg.GinMode = "release"
	assert.Error(t, cfg.Validate(), "release mode needs a real session secret")

	cfg.SessionSecret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.LoginRateLimit = -1
	assert.Error(t, cfg.Validate())
}
