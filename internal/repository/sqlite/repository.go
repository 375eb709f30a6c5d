package sqlite

import (
	"context"
	"database/sql"
	"time"

	"punchclock/internal/domain"
	"punchclock/internal/logging"
	"punchclock/internal/repository/sqlite/migrations"
	"punchclock/internal/temporal"
	"punchclock/internal/validation"

	_ "modernc.org/sqlite"
)

// Store defines the interface for timesheet persistence
type Store interface {
	// Write operations
	AddToTimesheet(ctx context.Context, row domain.TimesheetRow) error
	StopTimer(ctx context.Context, now time.Time) error
	AddTag(ctx context.Context, label string) (domain.TagID, error)
	NextTimesheetGroup(ctx context.Context) (domain.GroupID, error)

	// Read operations
	GetActiveTimer(ctx context.Context, now time.Time) (*domain.TimesheetRow, error)
	GetTimesheet(ctx context.Context, startTime, endTime time.Time) (*TimesheetIter, error)

	// Bulk load
	TimesheetAppender(ctx context.Context) (*TimesheetAppender, error)
	TimesheetTagAppender(ctx context.Context) (*TimesheetTagAppender, error)

	// Utility
	Close() error
}

// Options configure Open. Zero values fall back to defaults.
type Options struct {
	PoolSize    int
	BusyTimeout time.Duration
	Logger      logging.Logger
}

const (
	defaultPoolSize    = 4
	defaultBusyTimeout = 5 * time.Second
)

const (
	insertTimesheetQuery = `
	INSERT INTO timesheet (timesheet_group, start_time, end_time, activity)
	VALUES (?, ?, ?, ?)`

	// Closes the most recent interval, but only while it is still open:
	// an end time already in the past stays untouched.
	stopTimerQuery = `
	UPDATE timesheet
	SET end_time = ?
	WHERE end_time = (SELECT max(end_time) FROM timesheet) AND end_time >= ?`

	activeTimerQuery = `
	SELECT timesheet_group, start_time, end_time, activity
	FROM timesheet
	WHERE end_time >= ?
	ORDER BY end_time DESC
	LIMIT 1`

	insertTagQuery = `
	INSERT INTO tag (tag)
	VALUES (?)
	RETURNING id`

	nextGroupQuery = `
	INSERT INTO timesheet_group DEFAULT VALUES
	RETURNING timesheet_group`

	timesheetRangeQuery = `
	SELECT timesheet_group, start_time, end_time, activity
	FROM timesheet
	WHERE start_time >= ? AND end_time < ?
	ORDER BY start_time`
)

// SQLiteStore implements the Store interface on an embedded database file.
type SQLiteStore struct {
	pool      *Pool
	rangeStmt *sql.Stmt
	validator *validation.TimesheetValidator
	log       logging.Logger
}

// Open opens (creating if needed) the database file at path, migrates it to
// the current schema and prepares the store's long-lived statements.
func Open(ctx context.Context, path string, opts Options) (*SQLiteStore, error) {
	if opts.PoolSize == 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.BusyTimeout == 0 {
		opts.BusyTimeout = defaultBusyTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}

	pool, err := NewPool(path, opts.PoolSize, opts.BusyTimeout)
	if err != nil {
		return nil, err
	}

	if err := migrations.Run(ctx, pool.db, opts.Logger); err != nil {
		pool.Close()
		return nil, err
	}

	// The range query runs on every timesheet read; keep it compiled.
	rangeStmt, err := pool.Prepare(ctx, timesheetRangeQuery)
	if err != nil {
		pool.Close()
		return nil, err
	}

	opts.Logger.Debug(ctx, "opened timesheet store", "path", path, "pool_size", opts.PoolSize)

	return &SQLiteStore{
		pool:      pool,
		rangeStmt: rangeStmt,
		validator: validation.NewTimesheetValidator(),
		log:       opts.Logger,
	}, nil
}

// Close releases the prepared statements and the connection pool.
func (s *SQLiteStore) Close() error {
	stmtErr := s.rangeStmt.Close()
	poolErr := s.pool.Close()
	if stmtErr != nil {
		return HandleDatabaseError("close range statement", stmtErr)
	}
	return poolErr
}

// AddToTimesheet records one interval.
func (s *SQLiteStore) AddToTimesheet(ctx context.Context, row domain.TimesheetRow) error {
	if err := s.validator.ValidateRow(row); err != nil {
		return err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.ExecContext(ctx, insertTimesheetQuery,
		int64(row.Group),
		temporal.Timestamp(row.StartTime),
		temporal.Timestamp(row.EndTime),
		int32(row.Activity),
	)
	if err != nil {
		return HandleDatabaseError("insert timesheet row", err)
	}
	return nil
}

// StopTimer rewrites the end of the most recent still-open interval to now.
// It reports not found when every recorded interval has already ended.
func (s *SQLiteStore) StopTimer(ctx context.Context, now time.Time) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	end := temporal.Timestamp(now)
	result, err := conn.ExecContext(ctx, stopTimerQuery, end, end)
	if err != nil {
		return HandleDatabaseError("stop timer", err)
	}
	return ValidateRowsAffected(result, "open interval", end.String())
}

// GetActiveTimer returns the interval that is still open at now, preferring
// the latest end time when several qualify. It returns (nil, nil) when no
// timer is running.
func (s *SQLiteStore) GetActiveTimer(ctx context.Context, now time.Time) (*domain.TimesheetRow, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	row, err := ScanTimesheetRow(conn.QueryRowContext(ctx, activeTimerQuery, temporal.Timestamp(now)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, HandleDatabaseError("decode active timer", err)
	}
	return &row, nil
}

// AddTag stores a tag label and returns its generated id. Duplicate labels
// are allowed and receive distinct ids.
func (s *SQLiteStore) AddTag(ctx context.Context, label string) (domain.TagID, error) {
	if err := s.validator.ValidateTagLabel(label); err != nil {
		return 0, err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var id int64
	if err := conn.QueryRowContext(ctx, insertTagQuery, label).Scan(&id); err != nil {
		return 0, HandleDatabaseError("insert tag", err)
	}
	return domain.TagID(id), nil
}

// NextTimesheetGroup allocates a fresh group id. Ids are strictly increasing
// and never reused, even across concurrent callers.
func (s *SQLiteStore) NextTimesheetGroup(ctx context.Context) (domain.GroupID, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var id int64
	if err := conn.QueryRowContext(ctx, nextGroupQuery).Scan(&id); err != nil {
		return 0, HandleDatabaseError("next timesheet group", err)
	}
	return domain.GroupID(id), nil
}

// GetTimesheet streams the intervals that start at or after startTime and
// end before endTime.
func (s *SQLiteStore) GetTimesheet(ctx context.Context, startTime, endTime time.Time) (*TimesheetIter, error) {
	rows, err := s.rangeStmt.QueryContext(ctx, temporal.Timestamp(startTime), temporal.Timestamp(endTime))
	if err != nil {
		return nil, HandleDatabaseError("query timesheet range", err)
	}
	return &TimesheetIter{rows: rows}, nil
}

// TimesheetAppender starts a bulk load of intervals. The appender holds a
// pooled connection until closed.
func (s *SQLiteStore) TimesheetAppender(ctx context.Context) (*TimesheetAppender, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &TimesheetAppender{conn: conn, validator: s.validator}, nil
}

// TimesheetTagAppender starts a bulk load of group-tag associations. The
// appender holds a pooled connection until closed.
func (s *SQLiteStore) TimesheetTagAppender(ctx context.Context) (*TimesheetTagAppender, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &TimesheetTagAppender{conn: conn, validator: s.validator}, nil
}
