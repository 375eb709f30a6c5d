package cli

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"punchclock/internal/config"
	"punchclock/internal/repository/sqlite"
	"punchclock/internal/timer"
)

// SyncClient is the slice of the clock client the command handlers consume.
type SyncClient interface {
	Now(ctx context.Context) time.Time
	RefreshClockOffset(ctx context.Context) error
	CachedClockOffset() (time.Duration, bool)
	Offline() bool
}

// App represents the main CLI application
type App struct {
	store  sqlite.Store
	client SyncClient
	config *config.Config
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(store sqlite.Store, client SyncClient, cfg *config.Config) *App {
	return &App{
		store:  store,
		client: client,
		config: cfg,
	}
}

// Activities returns the configured activity rotation.
func (a *App) Activities() []timer.Activity {
	return []timer.Activity{
		{Name: "focus", Length: a.config.Timer.Focus},
		{Name: "break", Length: a.config.Timer.Break},
	}
}

// NewSession builds a timer session over the app's store and clock, resuming
// an interval left open by an earlier run.
func (a *App) NewSession(ctx context.Context) (*timer.Session, error) {
	return timer.NewSession(ctx, a.store, a.client, a.Activities())
}

// activityName renders the stored activity selector through the configured
// rotation.
func (a *App) activityName(activity int) string {
	activities := a.Activities()
	idx := activity - 1
	if idx < 0 || idx >= len(activities) {
		return strconv.Itoa(activity)
	}
	return activities[idx].Name
}

// parseTimeShorthand parses time shorthand like "30m", "2h", "1d", etc.
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	re := regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)
	matches := re.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, fmt.Errorf("invalid time format: %s", shorthand)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in time format: %s", shorthand)
	}

	unit := matches[2]
	var duration time.Duration

	switch unit {
	case "m":
		duration = time.Duration(value) * time.Minute
	case "h":
		duration = time.Duration(value) * time.Hour
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "w":
		duration = time.Duration(value) * 7 * 24 * time.Hour
	case "mo":
		duration = time.Duration(value) * 30 * 24 * time.Hour
	case "y":
		duration = time.Duration(value) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("invalid time unit: %s", unit)
	}

	return duration, nil
}

// formatCountdown renders a remaining duration for display.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}
