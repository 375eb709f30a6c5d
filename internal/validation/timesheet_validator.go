package validation

import (
	"punchclock/internal/domain"
	"punchclock/internal/errors"
)

// TimesheetValidator provides validation for timesheet-related operations
type TimesheetValidator struct {
	validator *Validator
}

// NewTimesheetValidator creates a new timesheet validator
func NewTimesheetValidator() *TimesheetValidator {
	return &TimesheetValidator{
		validator: NewValidator(),
	}
}

// ValidateRow validates an interval before it is written
func (tv *TimesheetValidator) ValidateRow(row domain.TimesheetRow) error {
	if !tv.validator.IsValidGroupID(int64(row.Group)) {
		return errors.NewValidationError("timesheet group must be a positive integer", nil).
			WithContext("group", int64(row.Group))
	}

	if row.StartTime.IsZero() {
		return errors.NewValidationError("start time is required", nil)
	}

	if row.EndTime.IsZero() {
		return errors.NewValidationError("end time is required", nil)
	}

	if !tv.validator.IsValidTimeRange(row.StartTime, row.EndTime) {
		return errors.NewValidationError("end time is before start time", nil).
			WithContext("start", row.StartTime).
			WithContext("end", row.EndTime)
	}

	return nil
}

// ValidateTagRow validates a group-tag association before it is written
func (tv *TimesheetValidator) ValidateTagRow(row domain.TimesheetTagRow) error {
	if !tv.validator.IsValidGroupID(int64(row.Group)) {
		return errors.NewValidationError("timesheet group must be a positive integer", nil).
			WithContext("group", int64(row.Group))
	}

	if !tv.validator.IsValidTagID(int64(row.TagID)) {
		return errors.NewValidationError("tag id must be a positive integer", nil).
			WithContext("tag_id", int64(row.TagID))
	}

	return nil
}

// ValidateTagLabel validates a tag label before it is stored
func (tv *TimesheetValidator) ValidateTagLabel(label string) error {
	if !tv.validator.IsNonEmptyString(label) {
		return errors.NewValidationError("tag label must not be empty", nil)
	}

	if !tv.validator.IsValidStringLength(label, 1, 255) {
		return errors.NewValidationError("tag label must be at most 255 characters", nil).
			WithContext("label", label)
	}

	return nil
}
