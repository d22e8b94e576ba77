package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dshills/breathe/internal/config"
)

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.Logging{Level: "info", Format: "console"}, Writer(&buf))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("gesture recognized")
	Sync(logger)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "gesture recognized")
	assert.Contains(t, out, colorBlue+"INFO"+colorReset)
	assert.Contains(t, out, "breathe.")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.Logging{Level: "debug", Format: "json"}, Writer(&buf))
	require.NoError(t, err)

	logger.Debug("tap", zap.String("kind", "tap"))
	Sync(logger)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "tap", entry["msg"])
	assert.Equal(t, "tap", entry["kind"])
	assert.Equal(t, "breathe", entry["logger"])
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breathe.log")
	logger, err := NewLogger(config.Logging{Level: "warn", File: path, MaxSizeMB: 1}, nil)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	Sync(logger)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"kept"`)
}

func TestNewLoggerDiscards(t *testing.T) {
	logger, err := NewLogger(config.Logging{}, nil)
	require.NoError(t, err)
	logger.Error("nowhere")
	Sync(logger)
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger(config.Logging{Level: "loud"}, nil)
	assert.Error(t, err)
}

func TestSyncNil(t *testing.T) {
	assert.NotPanics(t, func() { Sync(nil) })
}
