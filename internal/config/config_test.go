package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Zero(t, cfg.FrameInterval, "unset defers to the content file")
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.True(t, cfg.DefaultAdmin())
	assert.False(t, cfg.SMTP.Configured())
}

func TestEnvAndFlags(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("FRAME_INTERVAL", "20ms")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, 20*time.Millisecond, cfg.FrameInterval)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("port", "8080", "")
	require.NoError(t, fs.Parse([]string{"--port", "7000"}))
	cfg, err = Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
}

func TestRejectsBadValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load(nil)
	assert.ErrorIs(t, err, ErrInvalidLevel)

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("FRAME_INTERVAL", "-1s")
	_, err = Load(nil)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GITHUB_USER=octocat\n"), 0o600))
	t.Setenv("GITHUB_USER", "")
	os.Unsetenv("GITHUB_USER")
	t.Cleanup(func() { os.Unsetenv("GITHUB_USER") })

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.GitHubUser)

	assert.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoggerHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	cfg, err := Load(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown key=value")
}
