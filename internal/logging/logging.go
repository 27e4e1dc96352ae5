// Package logging provides structured logging setup for rentkit.
package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the default slog logger. Verbose mode shows debug
// records. Logs go to stderr so command output on stdout stays clean.
func Setup(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
