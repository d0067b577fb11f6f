package log

import (
	"log/slog"
	"os"
)

// ParseLevel maps a configured level name to a slog.Level.
// Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds a slog handler for the given level and format.
// Format is "json" or "text"; anything else gets the text handler.
func NewHandler(level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}

// Setup installs the process-wide default logger and returns it.
func Setup(level, format string) *slog.Logger {
	logger := slog.New(NewHandler(level, format))
	slog.SetDefault(logger)
	return logger
}
