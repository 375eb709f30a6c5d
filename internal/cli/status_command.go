package cli

import (
	"context"
	"fmt"

	"punchclock/internal/errors"
	"punchclock/internal/timer"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "status", "usage: punchclock status")
	}

	session, err := c.app.NewSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("read timer status", err)
	}

	state := session.State()
	switch state.Kind {
	case timer.Going:
		now := c.app.client.Now(ctx)
		fmt.Printf("%s running, %s remaining (until %s)\n",
			session.Activity().Name,
			formatCountdown(session.Remaining(now)),
			state.Until.Local().Format("15:04:05"))
	default:
		fmt.Printf("%s paused, %s remaining\n",
			session.Activity().Name, formatCountdown(state.Remaining))
	}

	if offset, ok := c.app.client.CachedClockOffset(); ok {
		fmt.Printf("Clock offset: %s\n", offset)
	} else if c.app.client.Offline() {
		fmt.Println("Clock: offline, using local time")
	} else {
		fmt.Println("Clock: not synchronized yet")
	}
	return nil
}
