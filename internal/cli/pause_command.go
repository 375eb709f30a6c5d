package cli

import (
	"context"
	"fmt"

	"punchclock/internal/errors"
	"punchclock/internal/timer"
)

// PauseCommand handles the pause command
type PauseCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the pause command
func (c *PauseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "pause", "usage: punchclock pause")
	}

	session, err := c.app.NewSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("pause timer", err)
	}

	if session.State().Kind != timer.Going {
		fmt.Println("No timer is running.")
		return nil
	}

	if err := session.Pause(ctx); err != nil {
		return c.errorHandler.Handle("pause timer", err)
	}

	fmt.Printf("Paused %s with %s remaining\n",
		session.Activity().Name, formatCountdown(session.State().Remaining))
	return nil
}
