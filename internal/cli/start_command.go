package cli

import (
	"context"
	"fmt"
	"strings"

	"timeledger/internal/api"
	"timeledger/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	// Note is attached to the new entry
	Note string
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute starts tracking the project named by args, stopping any running entry
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	projectRef := strings.TrimSpace(strings.Join(args, " "))
	if projectRef == "" {
		return errors.NewInvalidInputError("command", "start", "usage: tl start <project> [--note text]")
	}

	previous, err := c.api.CurrentSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	session, err := c.api.StartTimer(ctx, projectRef, c.Note)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	if previous != nil {
		fmt.Fprintf(c.app.out, "Stopped %s\n", sessionLabel(previous))
	}
	fmt.Fprintf(c.app.out, "%s %s at %s\n",
		c.app.styles.Running.Render("Started"),
		sessionLabel(session),
		c.app.formatClock(session.Entry.StartedAt))
	return nil
}

// sessionLabel names the session's project, with its note when set.
func sessionLabel(s *api.Session) string {
	name := "(no project)"
	if s.Project != nil {
		name = s.Project.Name
	}
	if s.Entry != nil && s.Entry.Note != "" {
		return fmt.Sprintf("%s (%s)", name, s.Entry.Note)
	}
	return name
}
