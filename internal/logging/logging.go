// Package logging sets up structured logging for the studio server.
package logging

import (
	"io"
	"log/slog"
)

// Setup builds the process logger on w and installs it as the slog
// default. Dev mode gets debug-level text; production gets info-level JSON.
// Every record carries app=hvr.
func Setup(w io.Writer, devMode bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if devMode {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("app", "hvr")
	slog.SetDefault(logger)
	return logger
}
