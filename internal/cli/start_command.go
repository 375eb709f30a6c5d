package cli

import (
	"context"
	"fmt"

	"punchclock/internal/errors"
	"punchclock/internal/timer"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "start", "usage: punchclock start")
	}

	session, err := c.app.NewSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	if session.State().Kind == timer.Going {
		fmt.Println("A timer is already running.")
		return nil
	}

	if err := session.Start(ctx); err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	state := session.State()
	fmt.Printf("Started %s, running until %s\n",
		session.Activity().Name, state.Until.Local().Format("15:04:05"))
	return nil
}
