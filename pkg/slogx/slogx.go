// Package slogx configures log/slog for the service and carries a request
// scoped logger through context.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Service string
	Version string
	Env     string // "dev", "staging", "production"
	Level   string // "debug", "info", "warn", "error"
	Format  string // "json" or "text"

	// Output defaults to stdout.
	Output io.Writer
}

// New builds the process logger, tags every record with service, version and
// env, and installs it as slog's default.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config string onto a slog.Level, defaulting to info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
