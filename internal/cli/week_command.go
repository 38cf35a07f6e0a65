package cli

import (
	"context"
	"fmt"

	"timeledger/internal/api"
	"timeledger/internal/errors"
	"timeledger/internal/timecalc"
)

// WeekCommand prints per-project totals of the current week
type WeekCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
}

// NewWeekCommand creates a new week command handler
func NewWeekCommand(app *App) *WeekCommand {
	return &WeekCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the week command
func (c *WeekCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "week", "usage: tl week")
	}

	summary, err := c.api.WeeklySummary(ctx)
	if err != nil {
		return c.errorHandler.Handle("summarize week", err)
	}

	out, styles := c.app.out, c.app.styles
	last := summary.Interval.End.AddDate(0, 0, -1)
	fmt.Fprintf(out, "%s  %s - %s\n",
		styles.Header.Render("Week"),
		c.app.formatDate(summary.Interval.Start),
		c.app.formatDate(last))

	if len(summary.Projects) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("No completed entries this week"))
		return nil
	}

	width := 0
	for _, project := range summary.Projects {
		width = max(width, len(projectLabel(project.Name)))
	}
	for _, project := range summary.Projects {
		fmt.Fprintf(out, "  %-*s  %s\n", width, projectLabel(project.Name), timecalc.FormatHoursMinutes(project.TotalSeconds))
	}
	fmt.Fprintf(out, "  %-*s  %s\n", width, styles.Header.Render("Total"), timecalc.FormatHoursMinutes(summary.TotalSeconds))
	return nil
}
