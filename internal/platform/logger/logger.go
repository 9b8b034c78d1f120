package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/attune-api/internal/config"
)

// ParseLevel converts a configured level name (case-insensitive) into a
// slog.Level. The second result is false for unknown names, in which case
// slog.LevelInfo is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New creates a JSON logger writing to w at the given level name. An unknown
// level falls back to info and the fallback itself is logged as a warning.
func New(w io.Writer, levelName string) *slog.Logger {
	level, ok := ParseLevel(levelName)

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			slog.String("configured_level", levelName),
			slog.String("default_level", "info"))
	}
	return logger.With(slog.String("service", ServiceName))
}

// ServiceName is attached to every record produced by New.
const ServiceName = "attune-api"

// Setup initializes the application's logging system from cfg. It creates a
// structured JSON logger on stdout, installs it as the slog default and
// returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	logger := New(w, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger, nil
}
