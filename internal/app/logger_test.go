package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	testCases := []struct {
		level    string
		enabled  slog.Level
		disabled []slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug},
		{level: "info", enabled: slog.LevelInfo, disabled: []slog.Level{slog.LevelDebug}},
		{level: "warn", enabled: slog.LevelWarn, disabled: []slog.Level{slog.LevelInfo}},
		{level: "error", enabled: slog.LevelError, disabled: []slog.Level{slog.LevelWarn}},
		{level: "loud", enabled: slog.LevelInfo, disabled: []slog.Level{slog.LevelDebug}},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger := newLogger(tc.level, "text", &bytes.Buffer{})
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tc.enabled))
			for _, l := range tc.disabled {
				assert.False(t, logger.Enabled(ctx, l))
			}
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	newLogger("info", "json", &buf).Info("Wire resolved.", "wire", "a", "signal", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Wire resolved.", record["msg"])
	assert.Equal(t, "wiregrid", record["app"])
	assert.Equal(t, "a", record["wire"])
	assert.Equal(t, float64(7), record["signal"])
}
