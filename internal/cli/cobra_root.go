package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"punchclock/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    app,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "punchclock",
		Short: "A command-line work interval tracker",
		Long: `Punchclock is a command-line tool for tracking timed work intervals.

FEATURES:
  • Countdown timers for focused work and breaks, recorded as timesheet intervals
  • Tag working sessions for later review
  • Review history, export it to CSV, or bulk import from CSV
  • Clock synchronization against a reference endpoint for skew-free countdowns
  • Fully configurable via environment variables and command-line flags

EXAMPLES:
  punchclock start                         # Start the countdown for the current activity
  punchclock status                        # Show the countdown and clock state
  punchclock pause                         # Stop the open interval
  punchclock tag "client work"             # Tag the running session
  punchclock history 1w                    # List intervals from the last week
  punchclock history 1d csv > day.csv      # Export the last day as CSV
  punchclock summary 1w                    # Total time per activity this week
  punchclock import day.csv                # Bulk load intervals from CSV
  punchclock sync                          # Refresh the clock offset

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    PUNCH_DB_DIR                           Database directory (default: ~/.punchclock)
    PUNCH_DB_FILENAME                      Database filename (default: punchclock.db)
    PUNCH_DB_POOL_SIZE                     Connection pool size (default: 4)
    PUNCH_DB_BUSY_TIMEOUT                  Lock wait timeout (default: 5s)

  Sync Configuration:
    PUNCH_SYNC_BASE_URL                    Reference endpoint base URL (default: http://127.0.0.1:8080)

  Timer Configuration:
    PUNCH_TIMER_FOCUS                      Focus activity length (default: 90m)
    PUNCH_TIMER_BREAK                      Break activity length (default: 10m)

  Application Configuration:
    PUNCH_APP_TIMEOUT                      Application timeout (default: 60s)
    PUNCH_APP_VERBOSE                      Enable verbose output (default: false)

TIME FORMATS:
  Use these shorthand formats for history ranges:
    30m, 2h, 1d, 2w, 3mo, 1y              # Minutes, hours, days, weeks, months, years

GETTING HELP:
  punchclock [command] --help              # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.getConfigFromFlags()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.Duration("app-timeout", 0, "Application timeout (overrides PUNCH_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides PUNCH_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the countdown",
		Long:  "Open a timesheet interval for the current activity, counting down whatever remains of it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewStartCommand(r.app).Execute(ctx, args)
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the countdown",
		Long:  "Close the open timesheet interval and keep the unspent remainder of the countdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewPauseCommand(r.app).Execute(ctx, args)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the countdown and clock state",
		Long:  "Display the current activity, how much countdown remains and the clock synchronization state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewStatusCommand(r.app).Execute(ctx, args)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history [range] [csv]",
		Short: "List completed intervals",
		Long: `List the completed intervals of the recent past.

Range filters support: 30m, 2h, 1d, 2w, 3mo, 1y (default 1d)
Add "csv" to export in CSV format instead of a table.

Examples:
  punchclock history            # Intervals from the last day
  punchclock history 1w         # Intervals from the last week
  punchclock history 1w csv     # The same, as CSV`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewHistoryCommand(r.app).Execute(ctx, args)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [range]",
		Short: "Summarize time per activity",
		Long: `Aggregate the completed intervals of the recent past into per-activity
totals.

Range filters support: 30m, 2h, 1d, 2w, 3mo, 1y (default 1d)

Examples:
  punchclock summary            # Totals for the last day
  punchclock summary 1w         # Totals for the last week`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSummaryCommand(r.app).Execute(ctx, args)
		},
	}

	tagCmd := &cobra.Command{
		Use:   "tag [label]",
		Short: "Tag the running session",
		Long:  "Attach a tag label to the working session that is currently running.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewTagCommand(r.app).Execute(ctx, args)
		},
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the clock offset",
		Long:  "Force a round trip to the reference endpoint and cache the new clock offset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSyncCommand(r.app).Execute(ctx, args)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Bulk load intervals from CSV",
		Long: `Bulk load intervals from a CSV file in the history export layout:
group,start_time,end_time,activity with a leading header line.

Example:
  punchclock import day.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewImportCommand(r.app).Execute(ctx, args)
		},
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		startCmd,
		pauseCmd,
		statusCmd,
		historyCmd,
		summaryCmd,
		tagCmd,
		syncCmd,
		importCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}
