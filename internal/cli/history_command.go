package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"punchclock/internal/errors"
	"punchclock/internal/temporal"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App) *HistoryCommand {
	return &HistoryCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	window := 24 * time.Hour
	format := "table"

	for _, arg := range args {
		if arg == "csv" {
			format = "csv"
			continue
		}
		d, err := parseTimeShorthand(arg)
		if err != nil {
			return errors.NewInvalidInputError("range", arg, "usage: punchclock history [range] [csv]")
		}
		window = d
	}

	// Completed intervals only: the range is closed at the corrected now,
	// so anything still counting down stays out.
	now := c.app.client.Now(ctx)
	it, err := c.app.store.GetTimesheet(ctx, now.Add(-window), now)
	if err != nil {
		return c.errorHandler.Handle("read timesheet", err)
	}
	defer it.Close()

	var writer *csv.Writer
	if format == "csv" {
		writer = csv.NewWriter(os.Stdout)
		defer writer.Flush()
		if err := writer.Write([]string{"group", "start_time", "end_time", "activity"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	} else {
		fmt.Printf("%-8s %-23s %-23s %-10s %s\n", "GROUP", "START", "END", "LENGTH", "ACTIVITY")
	}

	count := 0
	for it.Next() {
		row, err := it.Row()
		if err != nil {
			// One unreadable row does not end the listing.
			fmt.Fprintf(os.Stderr, "warning: skipping unreadable row: %v\n", c.errorHandler.HandleSimple(err))
			continue
		}

		group := strconv.FormatInt(int64(row.Group), 10)
		start := temporal.Encode(row.StartTime)
		end := temporal.Encode(row.EndTime)

		if writer != nil {
			record := []string{group, start, end, strconv.Itoa(int(row.Activity))}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		} else {
			fmt.Printf("%-8s %-23s %-23s %-10s %s\n",
				group, start, end, formatCountdown(row.Duration()), c.app.activityName(int(row.Activity)))
		}
		count++
	}
	if err := it.Err(); err != nil {
		return c.errorHandler.Handle("read timesheet", err)
	}

	if format == "table" && count == 0 {
		fmt.Println("No completed intervals in range.")
	}
	return nil
}
