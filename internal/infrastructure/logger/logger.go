package logger

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a JSON logger writing to stdout at the given level
// (debug, info, warn or error; anything else means info) and installs it
// as the slog default.
func NewLogger(level string) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(log)
	return log
}

// ParseLevel maps a level name onto a slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
