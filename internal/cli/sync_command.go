package cli

import (
	"context"
	"fmt"

	"punchclock/internal/errors"
)

// SyncCommand handles the sync command
type SyncCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSyncCommand creates a new sync command handler
func NewSyncCommand(app *App) *SyncCommand {
	return &SyncCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "sync", "usage: punchclock sync")
	}

	if err := c.app.client.RefreshClockOffset(ctx); err != nil {
		return c.errorHandler.Handle("synchronize clock", err)
	}

	offset, _ := c.app.client.CachedClockOffset()
	fmt.Printf("Clock offset: %s\n", offset)
	return nil
}
