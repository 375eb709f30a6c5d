package domain

import (
	"time"
)

// GroupID identifies a timesheet group. Groups tie together the intervals
// and tags that belong to one working session.
type GroupID int64

// TagID identifies a tag label.
type TagID int64

// Activity is the numeric activity selector recorded with each interval.
type Activity int32

// TimesheetRow represents one recorded interval in the domain model.
// This is a pure domain model without database-specific concerns.
type TimesheetRow struct {
	Group     GroupID
	StartTime time.Time
	EndTime   time.Time
	Activity  Activity
}

// NewTimesheetRow creates a new interval for the given group.
func NewTimesheetRow(group GroupID, start, end time.Time, activity Activity) TimesheetRow {
	return TimesheetRow{
		Group:     group,
		StartTime: start,
		EndTime:   end,
		Activity:  activity,
	}
}

// Duration returns the length of the interval.
func (r TimesheetRow) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// OpenAt returns true if the interval is still open at the given instant,
// i.e. its end time has not yet passed.
func (r TimesheetRow) OpenAt(now time.Time) bool {
	return !r.EndTime.Before(now)
}

// IsValid checks if the interval has valid data.
func (r TimesheetRow) IsValid() bool {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return false
	}
	if r.EndTime.Before(r.StartTime) {
		return false
	}
	return true
}

// TimesheetTagRow attaches a tag to a timesheet group.
type TimesheetTagRow struct {
	Group GroupID
	TagID TagID
}
