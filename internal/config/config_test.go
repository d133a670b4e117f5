package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("MYSQL_DSN", "")

	cfg := New()

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "clientFoundRows=true")
	assert.Equal(t, 30*24*time.Hour, cfg.Match.CooldownWindow)
	assert.Equal(t, 5, cfg.Match.ResultCap)
	assert.Equal(t, "match.found", cfg.NATS.Subject)
	assert.NoError(t, cfg.Validate())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("MATCH_COOLDOWN_WINDOW", "48h")
	t.Setenv("MATCH_RESULT_CAP", "3")
	t.Setenv("RATE_LIMIT_VOTES", "0")
	t.Setenv("LOG_SOURCE", "yes")

	cfg := New()

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "host=pg")
	assert.Equal(t, 48*time.Hour, cfg.Match.CooldownWindow)
	assert.Equal(t, 3, cfg.Match.ResultCap)
	assert.Equal(t, 0, cfg.RateLimit.Votes)
	assert.True(t, cfg.Log.Source)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  driver: sqlite
  name: matchtest
match:
  cooldown_window: 72h
  result_cap: 10
log:
  level: debug
`), 0o600))
	t.Setenv("MATCH_RESULT_CAP", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "file:matchtest.db?_foreign_keys=on", cfg.DB.DSN)
	assert.Equal(t, 72*time.Hour, cfg.Match.CooldownWindow)
	assert.Equal(t, 7, cfg.Match.ResultCap)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  driver: oracle\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
