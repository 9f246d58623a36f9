package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("BOT_DEBUG", "true")
	t.Setenv("DB_CONNECTION_STRING", "postgres://u:p@localhost/choplab")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Token)
	assert.True(t, cfg.BotDebug)
	assert.Equal(t, "postgres://u:p@localhost/choplab", cfg.DBConnectionString)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.DBConnectionString)
}

func TestLoadWithoutToken(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TOKEN", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "INFO"}).Level())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).Level())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).Level())
	assert.Equal(t, slog.LevelDebug, (&Config{}).Level())
}

func TestStringMasksSecrets(t *testing.T) {
	s := (&Config{Token: "123:abc", DBConnectionString: "postgres://u:secret@h/db"}).String()
	assert.NotContains(t, s, "123:abc")
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "Token: ********")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
