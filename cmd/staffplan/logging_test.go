package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/staffplan/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
}

func TestCappedFile_KeepsNewestBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "staffplan.log")
	f, err := openCappedFile(path, 10, 4)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	_, err = f.Write([]byte("0123456789"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = f.Write([]byte("abc"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9abc", string(data))

	_, err = f.Write([]byte("de"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9abcde", string(data))
}

func TestNewLogger_WritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Path = filepath.Join(t.TempDir(), "app.log")
	cfg.Log.Level = "debug"

	logger, closeFn, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("msg=hello k=v")))
}
