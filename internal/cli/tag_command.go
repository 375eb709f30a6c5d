package cli

import (
	"context"
	"fmt"
	"strings"

	"punchclock/internal/domain"
	"punchclock/internal/errors"
)

// TagCommand handles the tag command
type TagCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTagCommand creates a new tag command handler
func NewTagCommand(app *App) *TagCommand {
	return &TagCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the tag command
func (c *TagCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "tag", "usage: punchclock tag \"your label here\"")
	}
	label := strings.Join(args, " ")

	// The tag attaches to the group of the interval open right now.
	now := c.app.client.Now(ctx)
	row, err := c.app.store.GetActiveTimer(ctx, now)
	if err != nil {
		return c.errorHandler.Handle("tag timer", err)
	}
	if row == nil {
		fmt.Println("No timer is running.")
		return nil
	}

	tagID, err := c.app.store.AddTag(ctx, label)
	if err != nil {
		return c.errorHandler.Handle("tag timer", err)
	}

	appender, err := c.app.store.TimesheetTagAppender(ctx)
	if err != nil {
		return c.errorHandler.Handle("tag timer", err)
	}
	defer appender.Close()

	if err := appender.AppendRow(domain.TimesheetTagRow{Group: row.Group, TagID: tagID}); err != nil {
		return c.errorHandler.Handle("tag timer", err)
	}
	if err := appender.Flush(ctx); err != nil {
		return c.errorHandler.Handle("tag timer", err)
	}

	fmt.Printf("Tagged group %d with %q\n", row.Group, label)
	return nil
}
