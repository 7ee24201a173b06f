package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.log")
	log, closeLog, err := New(config.LoggingConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	log.Warn("settlement founded", "settlement_id", 7)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"settlement_id":7`)
}

func TestNew_UnwritableFile(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file", FilePath: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
