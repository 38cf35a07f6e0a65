package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"timeledger/internal/api"
	"timeledger/internal/errors"
	"timeledger/internal/validation"
)

// ProjectAddCommand creates a project
type ProjectAddCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.ProjectValidator

	// Target is the monthly target in hours; empty means none
	Target string
}

// NewProjectAddCommand creates a new project add handler
func NewProjectAddCommand(app *App) *ProjectAddCommand {
	return &ProjectAddCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
		validator:    validation.NewProjectValidatorWithConfig(app.config),
	}
}

// Execute runs the project add command
func (c *ProjectAddCommand) Execute(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")

	monthlyTarget, err := c.validator.ParseTarget(c.Target)
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}

	project, err := c.api.CreateProject(ctx, name, monthlyTarget)
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}

	fmt.Fprintf(c.app.out, "Added project %s\n", project.Name)
	return nil
}

// ProjectListCommand lists projects newest first
type ProjectListCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	All     bool
	ShowIDs bool
}

// NewProjectListCommand creates a new project list handler
func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the project list command
func (c *ProjectListCommand) Execute(ctx context.Context, args []string) error {
	projects, err := c.api.ListProjects(ctx, c.All)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	out, styles := c.app.out, c.app.styles
	if len(projects) == 0 {
		fmt.Fprintln(out, styles.Dim.Render("No projects yet. Add one with: tl project add <name>"))
		return nil
	}

	for _, project := range projects {
		line := project.Name
		if hours, ok := project.MonthlyTarget(); ok {
			line += styles.Dim.Render(fmt.Sprintf("  target %.1fh/month", hours))
		}
		if project.Archived {
			line += styles.Warn.Render("  archived")
		}
		if c.ShowIDs {
			line += "  " + styles.Dim.Render(project.ID)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// ProjectEditCommand renames a project or changes its target
type ProjectEditCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.ProjectValidator

	Name        string
	Target      string
	ClearTarget bool
}

// NewProjectEditCommand creates a new project edit handler
func NewProjectEditCommand(app *App) *ProjectEditCommand {
	return &ProjectEditCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
		validator:    validation.NewProjectValidatorWithConfig(app.config),
	}
}

// Execute runs the project edit command
func (c *ProjectEditCommand) Execute(ctx context.Context, args []string) error {
	projectRef := strings.Join(args, " ")
	if strings.TrimSpace(projectRef) == "" {
		return errors.NewInvalidInputError("command", "project edit", "usage: tl project edit <project> [--name NAME] [--target HOURS | --no-target]")
	}

	var update api.ProjectUpdate
	if c.Name != "" {
		update.Name = &c.Name
	}
	if c.ClearTarget {
		update.ClearTarget = true
	} else if c.Target != "" {
		monthlyTarget, err := c.validator.ParseTarget(c.Target)
		if err != nil {
			return c.errorHandler.Handle("edit project", err)
		}
		update.Target = monthlyTarget
	}

	project, err := c.api.UpdateProject(ctx, projectRef, update)
	if err != nil {
		return c.errorHandler.Handle("edit project", err)
	}

	fmt.Fprintf(c.app.out, "Updated project %s\n", project.Name)
	return nil
}

// ProjectDeleteCommand archives or removes a project after confirmation
type ProjectDeleteCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler

	// Yes skips the confirmation prompt
	Yes bool
}

// NewProjectDeleteCommand creates a new project delete handler
func NewProjectDeleteCommand(app *App) *ProjectDeleteCommand {
	return &ProjectDeleteCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the project delete command
func (c *ProjectDeleteCommand) Execute(ctx context.Context, args []string) error {
	projectRef := strings.Join(args, " ")
	if strings.TrimSpace(projectRef) == "" {
		return errors.NewInvalidInputError("command", "project delete", "usage: tl project delete <project> [--yes]")
	}

	project, err := c.api.FindProject(ctx, projectRef)
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}

	if !c.Yes && !c.confirm(fmt.Sprintf("Delete project %s? [y/N] ", project.Name)) {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}

	archived, err := c.api.DeleteProject(ctx, project.ID)
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}

	if archived {
		fmt.Fprintf(c.app.out, "Archived project %s; its entries are kept\n", project.Name)
		return nil
	}
	fmt.Fprintf(c.app.out, "Deleted project %s\n", project.Name)
	return nil
}

func (c *ProjectDeleteCommand) confirm(prompt string) bool {
	fmt.Fprint(c.app.out, prompt)
	answer, _ := bufio.NewReader(c.app.in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
