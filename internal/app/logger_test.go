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

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug},
		{level: "info", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{level: "WARN", enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, muted: slog.LevelWarn},
		{level: "bogus", enabled: slog.LevelInfo, muted: slog.LevelDebug},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger := newLogger(tc.level, "text", &bytes.Buffer{})
			assert.True(t, logger.Enabled(context.Background(), tc.enabled))
			if tc.level != "debug" {
				assert.False(t, logger.Enabled(context.Background(), tc.muted))
			}
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	newLogger("info", "json", buf).Info("Document loaded.", "files", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Document loaded.", record["msg"])
	assert.EqualValues(t, 2, record["files"])
}
