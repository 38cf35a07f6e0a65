package cli

import (
	"context"
	"fmt"
	"strings"

	"timeledger/internal/api"
	"timeledger/internal/errors"
	"timeledger/internal/services"
)

// EntryEditCommand changes the note or times of a completed entry
type EntryEditCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	Note    string
	NoteSet bool
	Start   string
	End     string
}

// NewEntryEditCommand creates a new entry edit handler
func NewEntryEditCommand(app *App) *EntryEditCommand {
	return &EntryEditCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the entry edit command
func (c *EntryEditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "entry edit", "usage: tl entry edit <entry-id> [--note TEXT] [--start TIME] [--end TIME]")
	}

	var changes services.EntryChanges
	if c.NoteSet {
		changes.Note = &c.Note
	}
	if c.Start != "" {
		startedAt, err := c.app.parseDateTime(c.Start)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		changes.StartedAt = &startedAt
	}
	if c.End != "" {
		endedAt, err := c.app.parseDateTime(c.End)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		changes.EndedAt = &endedAt
	}

	entry, err := c.api.UpdateEntry(ctx, strings.TrimSpace(args[0]), changes)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	fmt.Fprintf(c.app.out, "Updated entry %s - %s (%s)\n",
		c.app.formatDateTime(entry.StartedAt),
		c.app.formatClock(*entry.EndedAt),
		entry.FormattedDuration(*entry.EndedAt))
	return nil
}

// EntryDeleteCommand removes a completed entry
type EntryDeleteCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
}

// NewEntryDeleteCommand creates a new entry delete handler
func NewEntryDeleteCommand(app *App) *EntryDeleteCommand {
	return &EntryDeleteCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the entry delete command
func (c *EntryDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "entry delete", "usage: tl entry delete <entry-id>")
	}

	id := strings.TrimSpace(args[0])
	if err := c.api.DeleteEntry(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	fmt.Fprintf(c.app.out, "Deleted entry %s\n", id)
	return nil
}
