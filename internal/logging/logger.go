package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldEntryID   = "entry_id"
	FieldProjectID = "project_id"
	FieldError     = "error"
	FieldPeriod    = "period"
	FieldCount     = "count"
)

// Component names
const (
	ComponentApp     = "app"
	ComponentTimer   = "timer"
	ComponentProject = "project"
	ComponentEntry   = "entry"
	ComponentReport  = "report"
	ComponentTarget  = "target"
)

// Config holds logger configuration
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// ParseLevel converts debug, info, warn or error into a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// New builds a slog logger writing to stderr unless Output is set.
// TL_DEBUG forces debug level regardless of the configured one.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if DebugEnabled() {
		level = slog.LevelDebug
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "", "text":
		handler = slog.NewTextHandler(out, opts)
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return slog.New(handler), nil
}

// WithComponent tags every record of the returned logger with component.
// A nil logger yields a discarding one.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With(FieldComponent, component)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
