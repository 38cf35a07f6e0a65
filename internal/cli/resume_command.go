package cli

import (
	"context"
	"fmt"

	"timeledger/internal/api"
	"timeledger/internal/domain"
	"timeledger/internal/errors"
)

// ResumeCommand restarts the project of the most recent entry
type ResumeCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the resume command. The previous note is carried over.
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "resume", "usage: tl resume")
	}

	running, err := c.api.CurrentSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("resume timer", err)
	}
	if running != nil {
		fmt.Fprintf(c.app.out, "Already tracking %s\n", sessionLabel(running))
		return nil
	}

	entries, err := c.api.ListEntries(ctx, domain.EntryFilter{})
	if err != nil {
		return c.errorHandler.Handle("resume timer", err)
	}

	for _, entry := range entries {
		if entry.ProjectID == nil {
			continue
		}
		session, err := c.api.StartTimer(ctx, *entry.ProjectID, entry.Note)
		if err != nil {
			return c.errorHandler.Handle("resume timer", err)
		}
		fmt.Fprintf(c.app.out, "%s %s\n", c.app.styles.Running.Render("Resumed"), sessionLabel(session))
		return nil
	}

	fmt.Fprintln(c.app.out, "Nothing to resume yet. Start a timer with: tl start <project>")
	return nil
}
