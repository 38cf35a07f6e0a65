package cli

import (
	"context"
	"fmt"
	"time"

	"timeledger/internal/api"
	"timeledger/internal/domain"
	"timeledger/internal/errors"
	"timeledger/internal/timecalc"
)

// EntriesCommand lists the entries of one day, month or year grouped by day
type EntriesCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	Period  string
	Date    string
	Project string
	ShowIDs bool
}

// NewEntriesCommand creates a new entries command handler
func NewEntriesCommand(app *App) *EntriesCommand {
	return &EntriesCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
		Period:       string(timecalc.PeriodDay),
	}
}

// Execute runs the entries command
func (c *EntriesCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "entries", "usage: tl entries [--period day|month|year] [--date DATE] [--project NAME]")
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
		return c.errorHandler.Handle("list entries", err)
	}
	c.print(view)
	return nil
}

func (c *EntriesCommand) print(view *api.PeriodView) {
	out, styles := c.app.out, c.app.styles

	fmt.Fprintf(out, "%s  %s\n",
		styles.Header.Render(view.Label),
		timecalc.FormatHoursMinutes(view.Report.TotalSeconds))

	if len(view.Report.Groups) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("No entries"))
		return
	}

	now := c.app.now()
	for _, group := range view.Report.Groups {
		fmt.Fprintf(out, "\n%s  %s\n",
			styles.Header.Render(group.Date.Format("Mon "+c.app.config.Display.DateFormat)),
			timecalc.FormatHoursMinutes(group.TotalSeconds))
		for _, entry := range group.Entries {
			fmt.Fprintln(out, c.entryLine(view, entry, now))
		}
	}
}

func (c *EntriesCommand) entryLine(view *api.PeriodView, entry domain.TimeEntry, now time.Time) string {
	styles := c.app.styles

	end := styles.Running.Render("running")
	if !entry.IsRunning() {
		end = c.app.formatClock(*entry.EndedAt)
	}

	line := fmt.Sprintf("  %s - %-7s  %s  %s",
		c.app.formatClock(entry.StartedAt), end,
		entry.FormattedDuration(now),
		projectLabel(view.ProjectName(entry)))
	if entry.Note != "" {
		line += "  " + styles.Dim.Render(entry.Note)
	}
	if c.ShowIDs {
		line += "  " + styles.Dim.Render(entry.ID)
	}
	return line
}

func projectLabel(name string) string {
	if name == "" {
		return "(no project)"
	}
	return name
}
