package cli

import (
	"context"
	"fmt"

	"timeledger/internal/api"
	"timeledger/internal/timecalc"
)

// StatusCommand shows the running entry and, with Watch, follows its ticks
type StatusCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	// Watch keeps printing the elapsed time until ctx is done
	Watch bool
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	session, err := c.api.CurrentSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("read timer", err)
	}
	if session == nil {
		fmt.Fprintln(c.app.out, c.app.styles.Dim.Render("No timer is running"))
		return nil
	}

	fmt.Fprintf(c.app.out, "%s %s since %s  %s\n",
		c.app.styles.Running.Render("●"),
		sessionLabel(session),
		c.app.formatDateTime(session.Entry.StartedAt),
		timecalc.FormatHHMMSS(session.ElapsedSeconds))

	if !c.Watch {
		return nil
	}
	return c.watch(ctx, session.Entry.ID)
}

// watch prints every tick of the running entry until ctx is done.
// Ticks arrive on the controller's goroutine and are printed here.
func (c *StatusCommand) watch(ctx context.Context, entryID string) error {
	ticks := make(chan int64, 1)
	c.api.WatchElapsed(func(id string, elapsed int64) {
		if id != entryID {
			return
		}
		select {
		case ticks <- elapsed:
		default:
		}
	})
	defer c.api.WatchElapsed(nil)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.app.out)
			return nil
		case elapsed := <-ticks:
			fmt.Fprintf(c.app.out, "\r%s", timecalc.FormatHHMMSS(elapsed))
		}
	}
}
