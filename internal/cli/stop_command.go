package cli

import (
	"context"
	"fmt"

	"timeledger/internal/api"
	"timeledger/internal/errors"
	"timeledger/internal/timecalc"
)

// StopCommand handles the stop command
type StopCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute stops the running entry
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "stop", "usage: tl stop")
	}

	session, err := c.api.StopTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}
	if session == nil {
		fmt.Fprintln(c.app.out, "No timer is running")
		return nil
	}

	fmt.Fprintf(c.app.out, "Stopped %s after %s\n",
		sessionLabel(session), timecalc.FormatHHMMSS(session.ElapsedSeconds))
	return nil
}
