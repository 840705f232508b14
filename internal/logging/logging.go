// Package logging builds the JSON-lines logger. The TUI owns the terminal,
// so log records go to a file instead of stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the logger.
type Config struct {
	// Output overrides Path when set.
	Output io.Writer
	Path   string
	Level  slog.Level
	// Debug forces debug level.
	Debug bool
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger and a close func for its output.
func New(cfg Config) (*slog.Logger, func() error, error) {
	out := cfg.Output
	closeFn := func() error { return nil }
	if out == nil {
		if cfg.Path == "" {
			return slog.New(slog.NewJSONHandler(io.Discard, nil)), closeFn, nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	})
	return slog.New(handler), closeFn, nil
}

// Nop returns a logger that drops everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// DebugFromEnv reports whether TYPEMASTER_DEBUG=1 is set.
func DebugFromEnv() bool {
	return os.Getenv("TYPEMASTER_DEBUG") == "1"
}
