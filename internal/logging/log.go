package logging

import (
	"log/slog"
	"os"
)

// New returns a JSON logger for the given component. LOG_LEVEL switches
// verbosity; progress output for humans stays on the CLI layer.
func New(component string) *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", component)
}
