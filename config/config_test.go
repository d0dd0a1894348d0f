package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFileAppliesDefaults 验证空配置文件也能得到可用的默认值
func TestLoadFileAppliesDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DefaultWebhookURL, cfg.Webhook.URL)
	assert.Equal(t, 0, cfg.Webhook.TimeoutSec, "no timeout unless configured")
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, "pf_session", cfg.Session.CookieName)
	assert.True(t, cfg.Results.Selectable, "selection variant is the default")
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileReadsSections(t *testing.T) {
	content := `
server:
  host: 127.0.0.1
  port: 9090
webhook:
  url: http://localhost:5678/webhook/test
  timeout_sec: 45
  max_concurrent: 4
session:
  store: mysql
  idle_timeout_min: 15
results:
  selectable: false
database:
  host: db.local
  username: finder
  password: secret
  database: profile_finder
  parse_time: true
`
	cfg, err := LoadFile(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:5678/webhook/test", cfg.Webhook.URL)
	assert.Equal(t, 45, cfg.Webhook.TimeoutSec)
	assert.Equal(t, 4, cfg.Webhook.MaxConcurrent)
	assert.Equal(t, StoreMySQL, cfg.Session.Store)
	assert.Equal(t, 15, cfg.Session.IdleTimeoutMin)
	assert.False(t, cfg.Results.Selectable)
	assert.Equal(t, "finder:secret@tcp(db.local:3306)/profile_finder?charset=utf8mb4&parseTime=true", cfg.DB.DSN)
}

func TestLoadFileEnvOverrides(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "http://override/webhook")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_PASSWORD", "hunter2")

	cfg, err := LoadFile(writeConfig(t, "webhook:\n  url: http://file/webhook\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://override/webhook", cfg.Webhook.URL)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, StoreRedis, cfg.Session.Store)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}
