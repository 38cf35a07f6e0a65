package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"timeledger/internal/api"
	"timeledger/internal/config"
)

// APIFactory opens the engine for a loaded configuration. The returned
// func releases it.
type APIFactory func(cfg *config.Config) (api.API, func(), error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory APIFactory
	in      io.Reader
	out     io.Writer

	app     *App
	release func()
}

// NewRootCommand creates the root cobra command with global flags.
// The engine is opened on first use so help never touches the store.
func NewRootCommand(loader *config.Loader, factory APIFactory, out io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		in:      os.Stdin,
		out:     out,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A command-line time ledger",
		Long: `Time Ledger (tl) tracks time against projects with a single running timer,
day/month/year reports and monthly hour targets with carry-over.

EXAMPLES:
  tl project add "Client A" --target 40   # Add a project with a 40h monthly target
  tl start "Client A" --note "planning"   # Start the timer, stopping any running one
  tl status --watch                       # Follow the running timer
  tl stop                                 # Stop the running timer
  tl entries --period month               # This month's entries grouped by day
  tl week                                 # Per-project totals for this week
  tl target                               # Target standing of every project
  tl export --format json > march.json    # Export a period

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env > defaults

    TL_DB_DIR                  Database directory (default: ~/.timeledger)
    TL_DB_FILENAME             Database filename (default: ledger.db)
    TL_TIMEZONE                Calendar timezone, IANA name or Local (default: Local)
    TL_TIMER_TICK              Status refresh interval (default: 1s)
    TL_DISPLAY_DATE_FORMAT     Date format (default: 2006-01-02)
    TL_DISPLAY_TIME_FORMAT     Time format (default: 15:04)
    TL_DISPLAY_COLOR           auto, always or never (default: auto)
    TL_APP_TIMEOUT             Command timeout (default: 60s)
    TL_LOG_LEVEL               debug, info, warn or error (default: warn)
    TL_LOG_FORMAT              text or json (default: text)
    TL_DEBUG                   Any value enables debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the engine afterwards
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces the command line arguments
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetInput replaces the reader used for confirmation prompts
func (r *RootCommand) SetInput(in io.Reader) {
	r.in = in
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.String("timezone", "", "Calendar timezone (overrides TL_TIMEZONE)")
	flags.Duration("tick", 0, "Status refresh interval (overrides TL_TIMER_TICK)")
	flags.String("color", "", "Colour output: auto, always or never (overrides TL_DISPLAY_COLOR)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides TL_APP_TIMEOUT)")
	flags.String("log-level", "", "Log level (overrides TL_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides TL_LOG_FORMAT)")
}

// overridesFromFlags collects only the flags given on the command line
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetString(name)
		return &value
	}
	duration := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetDuration(name)
		return &value
	}

	overrides.DBDir = str("db-dir")
	overrides.DBFilename = str("db-filename")
	overrides.Timezone = str("timezone")
	overrides.TickInterval = duration("tick")
	overrides.Color = str("color")
	overrides.Timeout = duration("app-timeout")
	overrides.LogLevel = str("log-level")
	overrides.LogFormat = str("log-format")
	return overrides
}

// openApp loads configuration and opens the engine once per process
func (r *RootCommand) openApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(r.cmd.PersistentFlags()))
	if err != nil {
		return nil, err
	}

	apiInstance, release, err := r.factory(cfg)
	if err != nil {
		return nil, err
	}

	r.release = release
	r.app = NewApp(apiInstance, cfg, r.out)
	r.app.in = r.in
	return r.app, nil
}

func (r *RootCommand) close() {
	if r.release != nil {
		r.release()
		r.release = nil
	}
	r.app = nil
}

// run opens the engine and executes the handler under the command timeout
func (r *RootCommand) run(build func(app *App) Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.openApp()
		if err != nil {
			return err
		}
		ctx, cancel := app.withTimeout(cmd.Context())
		defer cancel()
		return build(app).Execute(ctx, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.startCommand(),
		r.stopCommand(),
		r.statusCommand(),
		r.resumeCommand(),
		r.entriesCommand(),
		r.weekCommand(),
		r.targetCommand(),
		r.projectCommand(),
		r.entryCommand(),
		r.exportCommand(),
	)
}

func (r *RootCommand) startCommand() *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "start <project>",
		Short: "Start the timer for a project",
		Long:  "Start tracking time for a project, named or by ID. A running timer is stopped first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewStartCommand(app)
			c.Note = note
			return c
		}),
	}
	cmd.Flags().StringVarP(&note, "note", "n", "", "Note for the new entry")
	return cmd
}

func (r *RootCommand) stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewStopCommand(app) }),
	}
}

func (r *RootCommand) statusCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Long:  "Show the running timer. With --watch the elapsed time refreshes until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.openApp()
			if err != nil {
				return err
			}
			c := NewStatusCommand(app)
			c.Watch = watch
			if watch {
				return c.Execute(cmd.Context(), args)
			}
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()
			return c.Execute(ctx, args)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh the elapsed time until interrupted")
	return cmd
}

func (r *RootCommand) resumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Restart the most recent project",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewResumeCommand(app) }),
	}
}

func (r *RootCommand) entriesCommand() *cobra.Command {
	var period, date, project string
	var ids bool
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List entries of a day, month or year",
		Long: `List entries of one period grouped by the day they started, newest first.
Running entries are listed but not counted in totals.

Examples:
  tl entries                               # Today
  tl entries --period month                # This month
  tl entries --period day --date 2026-03-09
  tl entries --period year --project "Client A"`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			c := NewEntriesCommand(app)
			c.Period, c.Date, c.Project, c.ShowIDs = period, date, project, ids
			return c
		}),
	}
	cmd.Flags().StringVarP(&period, "period", "p", "day", "Period: day, month or year")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Any date inside the period (default: today)")
	cmd.Flags().StringVar(&project, "project", "", "Only entries of this project")
	cmd.Flags().BoolVar(&ids, "ids", false, "Show entry IDs")
	return cmd
}

func (r *RootCommand) weekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Per-project totals for the current week",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewWeekCommand(app) }),
	}
}

func (r *RootCommand) targetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "target [project]",
		Short: "Show monthly target standing with carry-over",
		RunE:  r.run(func(app *App) Command { return NewTargetCommand(app) }),
	}
}

func (r *RootCommand) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var addTarget string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewProjectAddCommand(app)
			c.Target = addTarget
			return c
		}),
	}
	add.Flags().StringVarP(&addTarget, "target", "t", "", "Monthly target in hours")

	var all, ids bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			c := NewProjectListCommand(app)
			c.All, c.ShowIDs = all, ids
			return c
		}),
	}
	list.Flags().BoolVarP(&all, "all", "a", false, "Include archived projects")
	list.Flags().BoolVar(&ids, "ids", false, "Show project IDs")

	var name, editTarget string
	var noTarget bool
	edit := &cobra.Command{
		Use:   "edit <project>",
		Short: "Rename a project or change its target",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewProjectEditCommand(app)
			c.Name, c.Target, c.ClearTarget = name, editTarget, noTarget
			return c
		}),
	}
	edit.Flags().StringVar(&name, "name", "", "New name")
	edit.Flags().StringVarP(&editTarget, "target", "t", "", "New monthly target in hours")
	edit.Flags().BoolVar(&noTarget, "no-target", false, "Remove the monthly target")
	edit.MarkFlagsMutuallyExclusive("target", "no-target")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project",
		Long:  "Delete a project. A project with recorded entries is archived instead so its history is kept.",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Command {
			c := NewProjectDeleteCommand(app)
			c.Yes = yes
			return c
		}),
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(add, list, edit, del)
	return cmd
}

func (r *RootCommand) entryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Edit or delete recorded entries",
	}

	var note, start, end string
	edit := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Change the note or times of a completed entry",
		Long: `Change the note or times of a completed entry. Times use the display
date and time formats, e.g. "2026-03-09 14:30". Find IDs with: tl entries --ids`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return r.run(func(app *App) Command {
				h := NewEntryEditCommand(app)
				h.Note, h.NoteSet = note, c.Flags().Changed("note")
				h.Start, h.End = start, end
				return h
			})(c, args)
		},
	}
	edit.Flags().StringVarP(&note, "note", "n", "", "New note")
	edit.Flags().StringVar(&start, "start", "", "New start time")
	edit.Flags().StringVar(&end, "end", "", "New end time")

	del := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a completed entry",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(app *App) Command { return NewEntryDeleteCommand(app) }),
	}

	cmd.AddCommand(edit, del)
	return cmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	var format, period, date, project, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a period as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			c := NewExportCommand(app)
			c.Format, c.Period, c.Date, c.Project, c.Output = format, period, date, project, output
			return c
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Format: csv or json")
	cmd.Flags().StringVarP(&period, "period", "p", "month", "Period: day, month or year")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Any date inside the period (default: today)")
	cmd.Flags().StringVar(&project, "project", "", "Only entries of this project")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
