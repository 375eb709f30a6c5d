package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"punchclock/internal/errors"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// activityTotal accumulates the completed intervals of one activity.
type activityTotal struct {
	intervals int
	total     time.Duration
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "summary", "usage: punchclock summary [range]")
	}

	window := 24 * time.Hour
	if len(args) == 1 {
		d, err := parseTimeShorthand(args[0])
		if err != nil {
			return errors.NewInvalidInputError("range", args[0], "usage: punchclock summary [range]")
		}
		window = d
	}

	now := c.app.client.Now(ctx)
	it, err := c.app.store.GetTimesheet(ctx, now.Add(-window), now)
	if err != nil {
		return c.errorHandler.Handle("summarize timesheet", err)
	}
	defer it.Close()

	totals := make(map[int]*activityTotal)
	count := 0
	var grand time.Duration

	for it.Next() {
		row, rowErr := it.Row()
		if rowErr != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping unreadable row: %v\n", c.errorHandler.HandleSimple(rowErr))
			continue
		}

		at := totals[int(row.Activity)]
		if at == nil {
			at = &activityTotal{}
			totals[int(row.Activity)] = at
		}
		at.intervals++
		at.total += row.Duration()
		grand += row.Duration()
		count++
	}
	if err := it.Err(); err != nil {
		return c.errorHandler.Handle("summarize timesheet", err)
	}

	if count == 0 {
		fmt.Println("No completed intervals in range.")
		return nil
	}

	activities := make([]int, 0, len(totals))
	for activity := range totals {
		activities = append(activities, activity)
	}
	sort.Ints(activities)

	fmt.Printf("%-10s %-10s %s\n", "ACTIVITY", "INTERVALS", "TOTAL")
	for _, activity := range activities {
		at := totals[activity]
		fmt.Printf("%-10s %-10d %s\n", c.app.activityName(activity), at.intervals, formatCountdown(at.total))
	}
	fmt.Println(strings.Repeat("-", 32))
	fmt.Printf("Total: %s across %d intervals\n", formatCountdown(grand), count)
	return nil
}
