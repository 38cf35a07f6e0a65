package cli

import (
	"context"
	"io"
	"os"
	"time"

	"timeledger/internal/api"
	"timeledger/internal/config"
	"timeledger/internal/errors"
)

// App represents the main CLI application
type App struct {
	api          api.API
	config       *config.Config
	in           io.Reader
	out          io.Writer
	styles       *Styles
	errorHandler *ErrorHandler
	location     *time.Location

	// now is replaced in tests
	now func() time.Time
}

// NewApp creates a new CLI application instance with dependency injection.
// A nil out writes to stdout.
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	return &App{
		api:          apiInstance,
		config:       cfg,
		in:           os.Stdin,
		out:          out,
		styles:       NewStyles(out, cfg.Display.Color),
		errorHandler: NewErrorHandler(),
		location:     loc,
		now:          time.Now,
	}
}

// Command represents a CLI command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// withTimeout bounds one command by the configured application timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.Application.Timeout)
}

// parseDate reads a display-format date as local midnight. Empty means today.
func (a *App) parseDate(value string) (time.Time, error) {
	if value == "" {
		return a.now().In(a.location), nil
	}
	t, err := time.ParseInLocation(a.config.Display.DateFormat, value, a.location)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("date", value, "expected format "+a.config.Display.DateFormat)
	}
	return t, nil
}

// parseDateTime reads "<date> <time>" in the display formats.
func (a *App) parseDateTime(value string) (time.Time, error) {
	layout := a.config.Display.DateFormat + " " + a.config.Display.TimeFormat
	t, err := time.ParseInLocation(layout, value, a.location)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("time", value, "expected format "+layout)
	}
	return t, nil
}

func (a *App) formatDate(t time.Time) string {
	return t.In(a.location).Format(a.config.Display.DateFormat)
}

func (a *App) formatClock(t time.Time) string {
	return t.In(a.location).Format(a.config.Display.TimeFormat)
}

func (a *App) formatDateTime(t time.Time) string {
	return a.formatDate(t) + " " + a.formatClock(t)
}
