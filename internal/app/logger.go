package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger for one App. It does not touch the global
// logger, so tests can run apps side by side. Unknown levels fall back to
// info; the CLI rejects them before they get here.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(logW, opts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(logW, opts)
	}
	return slog.New(handler).With("app", "wiregrid")
}
