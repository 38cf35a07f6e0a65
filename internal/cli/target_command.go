package cli

import (
	"context"
	"fmt"
	"strings"

	"timeledger/internal/api"
	"timeledger/internal/domain"
	"timeledger/internal/target"
	"timeledger/internal/timecalc"
)

// TargetCommand shows monthly target standing for one project or all of them
type TargetCommand struct {
	api          api.API
	app          *App
	errorHandler *ErrorHandler
}

// NewTargetCommand creates a new target command handler
func NewTargetCommand(app *App) *TargetCommand {
	return &TargetCommand{
		api:          app.api,
		app:          app,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the target command. Without a project every targeted project is shown.
func (c *TargetCommand) Execute(ctx context.Context, args []string) error {
	projectRef := strings.TrimSpace(strings.Join(args, " "))
	if projectRef != "" {
		return c.showOne(ctx, projectRef)
	}

	results, err := c.api.ComputeAllTargets(ctx)
	if err != nil {
		return c.errorHandler.Handle("compute targets", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(c.app.out, c.app.styles.Dim.Render("No project has a monthly target"))
		return nil
	}
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(c.app.out)
		}
		project := result.Project
		c.print(&project, result.Calculation)
	}
	return nil
}

func (c *TargetCommand) showOne(ctx context.Context, projectRef string) error {
	status, err := c.api.ComputeTarget(ctx, projectRef)
	if err != nil {
		return c.errorHandler.Handle("compute target", err)
	}
	if !status.HasTarget {
		fmt.Fprintf(c.app.out, "%s has no monthly target\n", status.Project.Name)
		return nil
	}
	c.print(status.Project, status.Calculation)
	return nil
}

func (c *TargetCommand) print(project *domain.Project, calc target.Calculation) {
	out, styles := c.app.out, c.app.styles

	fmt.Fprintf(out, "%s  %s\n", styles.Header.Render(project.Name), styles.TargetState(calc))
	fmt.Fprintf(out, "  Target this month   %.1fh\n", calc.TargetCurrentMonth)
	fmt.Fprintf(out, "  Worked this month   %.1fh\n", calc.RealizedCurrentMonth)
	fmt.Fprintf(out, "  Carry (%d months)    %s\n", calc.NumberOfClosedMonths,
		styles.Signed(calc.CarryPreviousMonths, calc.FormattedCarry()))
	fmt.Fprintf(out, "  Remaining           %.1fh\n", calc.RemainingThisMonth)
	fmt.Fprintf(out, "  Status              %s\n",
		styles.Signed(calc.StatusThisMonth, timecalc.FormatSignedHours(calc.StatusThisMonth)))
}
