package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "notifications", cfg.DynamoTables.Notifications)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "errors", cfg.DynamoTables.Errors)
	assert.Equal(t, "https://www.nysaa.ai/chat", cfg.DeeplinkBaseURL)
	assert.Equal(t, 60*time.Second, cfg.ChatAPITimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "lambda", cfg.DispatcherMode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DYNAMO_TABLE_NOTIFICATIONS", "notifications-dev")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CHAT_API_TIMEOUT", "5s")
	t.Setenv("DISPATCHER_MODE", "http")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "notifications-dev", cfg.DynamoTables.Notifications)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.ChatAPITimeout)
	assert.Equal(t, "http", cfg.DispatcherMode)
}

func TestLoad_InvalidDispatcherMode(t *testing.T) {
	t.Setenv("DISPATCHER_MODE", "batch")
	_, err := Load()
	assert.ErrorContains(t, err, "DISPATCHER_MODE")
}

func TestLogEncoding(t *testing.T) {
	cases := []struct {
		env, format, want string
	}{
		{"development", "", "console"},
		{"production", "", "json"},
		{"production", "console", "console"},
		{"development", "json", "json"},
	}
	for _, c := range cases {
		cfg := &Config{AppEnv: c.env, LogFormat: c.format}
		assert.Equal(t, c.want, cfg.LogEncoding(), "%s/%q", c.env, c.format)
	}
}

func TestLoad_ProductionDefaultsToJSONLogs(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogEncoding())
	assert.False(t, cfg.TrustProxyHeaders)
}
