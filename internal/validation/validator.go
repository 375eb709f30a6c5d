package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validator provides common validation utilities
type Validator struct {
	timeShorthandRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		timeShorthandRegex: regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTimeRange checks that an interval does not end before it starts.
// Zero-length intervals are allowed.
func (v *Validator) IsValidTimeRange(startTime, endTime time.Time) bool {
	return !endTime.Before(startTime)
}

// IsValidGroupID checks if a timesheet group ID is valid (positive)
func (v *Validator) IsValidGroupID(id int64) bool {
	return id > 0
}

// IsValidTagID checks if a tag ID is valid (positive)
func (v *Validator) IsValidTagID(id int64) bool {
	return id > 0
}

// IsValidTimeShorthand checks if a time shorthand format is valid
func (v *Validator) IsValidTimeShorthand(shorthand string) bool {
	matches := v.timeShorthandRegex.FindStringSubmatch(shorthand)
	if matches == nil {
		return false
	}

	// Check if the number is valid
	value, err := strconv.Atoi(matches[1])
	if err != nil || value <= 0 {
		return false
	}

	// Check if the unit is valid
	unit := matches[2]
	validUnits := []string{"m", "h", "d", "w", "mo", "y"}
	for _, validUnit := range validUnits {
		if unit == validUnit {
			return true
		}
	}

	return false
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
