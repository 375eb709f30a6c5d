package cli

import (
	"errors"
	"testing"

	apperrors "punchclock/internal/errors"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "start timer",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to start timer: invalid input",
		},
		{
			name:      "Not found error",
			operation: "pause timer",
			err:       apperrors.NewNotFoundError("open timer", "now"),
			expected:  "failed to pause timer: open timer not found: now",
		},
		{
			name:      "Database error",
			operation: "read timesheet",
			err:       apperrors.NewDatabaseError("select", errors.New("timeout")),
			expected:  "failed to read timesheet: A database error occurred. Please try again.",
		},
		{
			name:      "Transport error",
			operation: "synchronize clock",
			err:       apperrors.NewTransportError("time_sync round trip", errors.New("refused")),
			expected:  "failed to synchronize clock: The time service could not be reached. Working from the local clock.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	appErr := apperrors.NewPoolError("acquire", errors.New("closed"))
	if got := eh.HandleSimple(appErr).Error(); got != "A database error occurred. Please try again." {
		t.Errorf("HandleSimple() = %q", got)
	}

	plain := errors.New("plain")
	if got := eh.HandleSimple(plain); got != plain {
		t.Errorf("HandleSimple() should pass plain errors through, got %v", got)
	}
}

func TestErrorHandler_Checks(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsValidationError(apperrors.NewValidationError("bad", nil)) {
		t.Error("IsValidationError() = false for a validation error")
	}
	if eh.IsValidationError(errors.New("bad")) {
		t.Error("IsValidationError() = true for a plain error")
	}
	if !eh.IsNotFoundError(apperrors.NewNotFoundError("timer", "open")) {
		t.Error("IsNotFoundError() = false for a not found error")
	}
	if eh.IsNotFoundError(apperrors.NewValidationError("bad", nil)) {
		t.Error("IsNotFoundError() = true for a validation error")
	}
}
