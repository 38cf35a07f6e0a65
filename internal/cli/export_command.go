package cli

import (
	"context"
	"os"

	"timeledger/internal/api"
	"timeledger/internal/errors"
	"timeledger/internal/export"
	"timeledger/internal/timecalc"
)

// ExportCommand writes one aggregated period as CSV or JSON
type ExportCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	Format  string
	Period  string
	Date    string
	Project string
	// Output is a file path; empty writes to the command output
	Output string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
		Format:       string(export.FormatCSV),
		Period:       string(timecalc.PeriodMonth),
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "export", "usage: tl export [--format csv|json] [--period day|month|year] [--date DATE] [--project NAME] [--output FILE]")
	}

	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return errors.NewInvalidInputError("format", c.Format, err.Error())
	}
	kind, err := timecalc.ParsePeriodKind(c.Period)
	if err != nil {
		return errors.NewInvalidInputError("period", c.Period, err.Error())
	}
	anchor, err := c.app.parseDate(c.Date)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	view, err := c.api.Aggregate(ctx, kind, anchor, c.Project)
	if err != nil {
		return c.errorHandler.Handle("export entries", err)
	}

	in := export.Input{
		Report:       view.Report,
		ProjectNames: view.ProjectNames,
		Now:          c.app.now(),
		Location:     c.app.location,
	}

	if c.Output == "" {
		return export.Write(c.app.out, format, in)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return c.errorHandler.Handle("export entries", err)
	}
	if err := export.Write(f, format, in); err != nil {
		f.Close()
		return c.errorHandler.Handle("export entries", err)
	}
	return f.Close()
}
