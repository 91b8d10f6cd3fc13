// Package logging builds the structured loggers used across the toolkit.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	Level  slog.Level
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
	// AddSource includes file:line in each record.
	AddSource bool
}

var defaultLogger atomic.Pointer[slog.Logger]

// New returns a logger for cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, FormatJSON) {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h)
}

// Default returns the toolkit logger, falling back to slog.Default().
func Default() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetDefault replaces the toolkit logger and points the global error
// handler at it. Passing nil restores slog.Default().
func SetDefault(l *slog.Logger) {
	defaultLogger.Store(l)
	guierrors.SetHandler(&guierrors.LogHandler{Logger: l})
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to slog
// levels. The empty string is info.
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
	}
	return slog.LevelInfo, guierrors.InvalidRequestf("logging.ParseLevel", s, "unknown log level")
}

// OpenFile opens path for appending log output.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, guierrors.FileIO("logging.OpenFile", path, err)
	}
	return f, nil
}
