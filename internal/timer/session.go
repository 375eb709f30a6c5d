// Package timer holds the countdown state machine that drives the store:
// a session alternates between a paused countdown and a running interval
// recorded in the timesheet.
package timer

import (
	"context"
	"time"

	"punchclock/internal/domain"
	"punchclock/internal/errors"
)

// Store is the slice of the timesheet store a session drives.
type Store interface {
	AddToTimesheet(ctx context.Context, row domain.TimesheetRow) error
	StopTimer(ctx context.Context, now time.Time) error
	GetActiveTimer(ctx context.Context, now time.Time) (*domain.TimesheetRow, error)
	NextTimesheetGroup(ctx context.Context) (domain.GroupID, error)
}

// Clock yields the corrected wall clock.
type Clock interface {
	Now(ctx context.Context) time.Time
}

// Activity is one entry of the session's rotation, such as focused work or
// a break.
type Activity struct {
	Name   string
	Length time.Duration
}

// StateKind tells whether the countdown is running.
type StateKind int

const (
	// Paused means no interval is open; Remaining holds the countdown.
	Paused StateKind = iota
	// Going means an interval is open until the Until instant.
	Going
)

func (k StateKind) String() string {
	switch k {
	case Paused:
		return "paused"
	case Going:
		return "going"
	default:
		return "unknown"
	}
}

// State is the session's position in the countdown. Remaining is meaningful
// while paused, Until while going.
type State struct {
	Kind      StateKind
	Remaining time.Duration
	Until     time.Time
}

// Session ties the activity rotation to the store. All intervals started
// within one session share a timesheet group, allocated on the first start.
// A Session belongs to a single owner and is not locked.
type Session struct {
	store      Store
	clock      Clock
	activities []Activity
	current    int
	group      *domain.GroupID
	state      State
}

// NewSession builds a session over the given activity rotation. When the
// store has an interval still open at the current instant, the session
// resumes it as a running countdown; intervals started before this process
// keep their original group, so the session allocates a fresh one on its
// first own start.
func NewSession(ctx context.Context, store Store, clock Clock, activities []Activity) (*Session, error) {
	if len(activities) == 0 {
		return nil, errors.NewValidationError("at least one activity is required", nil)
	}

	s := &Session{
		store:      store,
		clock:      clock,
		activities: activities,
		state:      State{Kind: Paused, Remaining: activities[0].Length},
	}

	now := clock.Now(ctx)
	row, err := store.GetActiveTimer(ctx, now)
	if err != nil {
		return nil, err
	}
	if row != nil {
		s.current = activityIndex(row.Activity, len(activities))
		s.state = State{Kind: Going, Until: row.EndTime}
	}
	return s, nil
}

// activityIndex maps the stored 1-based activity selector back onto the
// rotation, falling back to the first entry for values outside it.
func activityIndex(activity domain.Activity, n int) int {
	idx := int(activity) - 1
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

// Start opens an interval for the current activity, counting down whatever
// remains of it.
func (s *Session) Start(ctx context.Context) error {
	if s.state.Kind == Going {
		return errors.NewValidationError("a timer is already running", nil)
	}

	now := s.clock.Now(ctx)

	if s.group == nil {
		group, err := s.store.NextTimesheetGroup(ctx)
		if err != nil {
			return err
		}
		s.group = &group
	}

	until := now.Add(s.state.Remaining)
	row := domain.NewTimesheetRow(*s.group, now, until, domain.Activity(s.current+1))
	if err := s.store.AddToTimesheet(ctx, row); err != nil {
		return err
	}

	s.state = State{Kind: Going, Until: until}
	return nil
}

// Pause closes the open interval and keeps the unspent remainder of the
// countdown. After the countdown has run out the interval has already
// closed itself at its recorded end, so only the state flips; the remainder
// is floored at zero.
func (s *Session) Pause(ctx context.Context) error {
	if s.state.Kind != Going {
		return errors.NewValidationError("no timer is running", nil)
	}

	now := s.clock.Now(ctx)
	if !now.After(s.state.Until) {
		if err := s.store.StopTimer(ctx, now); err != nil {
			return err
		}
	}

	remaining := s.state.Until.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	s.state = State{Kind: Paused, Remaining: remaining}
	return nil
}

// CycleActivity advances to the next activity in the rotation and resets
// the countdown to its full length. Only a paused session can switch.
func (s *Session) CycleActivity() error {
	if s.state.Kind != Paused {
		return errors.NewValidationError("cannot switch activities while a timer is running", nil)
	}
	s.current = (s.current + 1) % len(s.activities)
	s.state = State{Kind: Paused, Remaining: s.activities[s.current].Length}
	return nil
}

// State reports the current countdown position.
func (s *Session) State() State {
	return s.state
}

// Activity reports the rotation entry the countdown belongs to.
func (s *Session) Activity() Activity {
	return s.activities[s.current]
}

// Group reports the session's timesheet group, once one has been allocated.
func (s *Session) Group() (domain.GroupID, bool) {
	if s.group == nil {
		return 0, false
	}
	return *s.group, true
}

// Remaining reports how much countdown is left at the given instant.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.state.Kind == Going {
		remaining := s.state.Until.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		return remaining
	}
	return s.state.Remaining
}
