// Package slogx builds the structured logger every hdnotes auth log line
// goes through and carries a request-scoped copy of it on the context.
//
// Lines are tagged with service, version and env at construction, req_id by
// HTTPMiddleware and user_id once a session token has been resolved. One-time
// codes and session tokens are never logged here.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config mirrors the LOG_* and ENV settings of the auth service.
type Config struct {
	Service string // "auth-service"
	Version string // app.BuildVersion
	Env     string // dev adds source locations
	Level   string // debug, info, warn or error
	Format  string // json (default) or text

	// Output defaults to os.Stdout.
	Output io.Writer
}

// New builds the service logger and installs it as slog.Default, so code
// without a request context (startup, housekeeping) logs the same way.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     ParseLevel(cfg.Level),
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a string to slog.Level. Unknown values mean info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
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
