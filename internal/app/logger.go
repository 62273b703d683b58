package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger creates the application logger. It does not set the global
// logger, so every App has an isolated one. Unknown levels fall back to
// info; any format other than json is text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(formatStr, "json") {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
