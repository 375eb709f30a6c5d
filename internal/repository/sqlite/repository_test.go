package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/domain"
	"punchclock/internal/errors"
	"punchclock/internal/temporal"
)

var testBase = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "punchclock.db")
	store, err := Open(context.Background(), dbPath, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// collectRows drains an iterator, separating cleanly decoded rows from
// per-row decode failures.
func collectRows(t *testing.T, it *TimesheetIter) ([]domain.TimesheetRow, []error) {
	t.Helper()
	defer it.Close()

	var rows []domain.TimesheetRow
	var rowErrs []error
	for it.Next() {
		row, err := it.Row()
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		rows = append(rows, row)
	}
	require.NoError(t, it.Err())
	return rows, rowErrs
}

func rawExec(t *testing.T, store *SQLiteStore, query string, args ...interface{}) {
	t.Helper()
	conn, err := store.pool.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Release()
	_, err = conn.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

func rawCount(t *testing.T, store *SQLiteStore, query string, args ...interface{}) int {
	t.Helper()
	conn, err := store.pool.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Release()
	var n int
	require.NoError(t, conn.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func TestOpen_MigratesFreshFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "punchclock.db")
	ctx := context.Background()

	store, err := Open(ctx, dbPath, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, rawCount(t, store, `SELECT version FROM migrations`))
	require.NoError(t, store.Close())

	// Reopening an already-migrated file is a no-op.
	store, err = Open(ctx, dbPath, Options{})
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, 1, rawCount(t, store, `SELECT version FROM migrations`))
}

func TestAddToTimesheet_RejectsInvalidRows(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase, testBase.Add(-time.Minute), 1))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	err = store.AddToTimesheet(ctx, domain.NewTimesheetRow(0, testBase, testBase.Add(time.Minute), 1))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestAddToTimesheet_RoundTripsThroughGetTimesheet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	want := domain.NewTimesheetRow(3, testBase, testBase.Add(90*time.Minute), 2)
	require.NoError(t, store.AddToTimesheet(ctx, want))

	it, err := store.GetTimesheet(ctx, testBase.Add(-time.Hour), testBase.Add(24*time.Hour))
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)

	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, want.Group, rows[0].Group)
	assert.Equal(t, want.Activity, rows[0].Activity)
	assert.True(t, rows[0].StartTime.Equal(want.StartTime))
	assert.True(t, rows[0].EndTime.Equal(want.EndTime))
}

func TestAddToTimesheet_FloorsSubMillisecondDetail(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	start := testBase.Add(123_456_789 * time.Nanosecond)
	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, start, start.Add(time.Hour), 1)))

	it, err := store.GetTimesheet(ctx, testBase.Add(-time.Hour), testBase.Add(24*time.Hour))
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)

	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].StartTime.Equal(testBase.Add(123*time.Millisecond)),
		"stored start should carry exactly millisecond precision, got %v", rows[0].StartTime)
}

func TestGetActiveTimer_NoneRunning(t *testing.T) {
	store := setupTestStore(t)

	row, err := store.GetActiveTimer(context.Background(), testBase)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestGetActiveTimer_FindsOpenInterval(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := testBase.Add(10 * time.Minute)

	// One closed interval and one still open at now.
	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase.Add(-2*time.Hour), testBase.Add(-time.Hour), 1)))
	open := domain.NewTimesheetRow(2, testBase, testBase.Add(90*time.Minute), 1)
	require.NoError(t, store.AddToTimesheet(ctx, open))

	row, err := store.GetActiveTimer(ctx, now)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.GroupID(2), row.Group)
	assert.True(t, row.EndTime.Equal(open.EndTime))
}

func TestGetActiveTimer_PrefersLatestEnd(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := testBase

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase, testBase.Add(30*time.Minute), 1)))
	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(2, testBase, testBase.Add(2*time.Hour), 1)))

	row, err := store.GetActiveTimer(ctx, now)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.GroupID(2), row.Group)
}

func TestGetActiveTimer_IgnoresClosedIntervals(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase.Add(-2*time.Hour), testBase.Add(-time.Hour), 1)))

	row, err := store.GetActiveTimer(ctx, testBase)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestStopTimer_ClosesOpenInterval(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := testBase.Add(10 * time.Minute)

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase, testBase.Add(90*time.Minute), 1)))
	require.NoError(t, store.StopTimer(ctx, now))

	// The interval now ends at the stop instant.
	it, err := store.GetTimesheet(ctx, testBase.Add(-time.Hour), testBase.Add(24*time.Hour))
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].EndTime.Equal(now), "end = %v, want %v", rows[0].EndTime, now)

	// Nothing is open any more at a later instant.
	row, err := store.GetActiveTimer(ctx, now.Add(time.Second))
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestStopTimer_SameInstantIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := testBase.Add(10 * time.Minute)

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase, testBase.Add(90*time.Minute), 1)))

	require.NoError(t, store.StopTimer(ctx, now))
	require.NoError(t, store.StopTimer(ctx, now))

	it, err := store.GetTimesheet(ctx, testBase.Add(-time.Hour), testBase.Add(24*time.Hour))
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].EndTime.Equal(now))
}

func TestStopTimer_NothingOpen(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Empty timesheet.
	err := store.StopTimer(ctx, testBase)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	// A later stop must not reopen an interval that already ended.
	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase.Add(-2*time.Hour), testBase.Add(-time.Hour), 1)))
	err = store.StopTimer(ctx, testBase)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	it, err := store.GetTimesheet(ctx, testBase.Add(-24*time.Hour), testBase.Add(24*time.Hour))
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].EndTime.Equal(testBase.Add(-time.Hour)), "closed interval must stay untouched")
}

func TestAddTag(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.AddTag(ctx, "deep-work")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int64(first), int64(1))

	// Duplicate labels are fine and get their own ids.
	second, err := store.AddTag(ctx, "deep-work")
	require.NoError(t, err)
	assert.Greater(t, int64(second), int64(first))

	assert.Equal(t, 2, rawCount(t, store, `SELECT count(*) FROM tag WHERE tag = ?`, "deep-work"))
}

func TestAddTag_RejectsEmptyLabel(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AddTag(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestNextTimesheetGroup_StrictlyIncreasing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var last domain.GroupID
	for i := 0; i < 25; i++ {
		id, err := store.NextTimesheetGroup(ctx)
		require.NoError(t, err)
		assert.Greater(t, int64(id), int64(last), "group ids must be strictly increasing")
		last = id

		// Interleave other writes; they must not disturb the sequence.
		if i%5 == 0 {
			require.NoError(t, store.AddToTimesheet(ctx,
				domain.NewTimesheetRow(id, testBase, testBase.Add(time.Minute), 1)))
		}
	}
}

func TestGetTimesheet_RangeBounds(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	from := testBase
	to := testBase.Add(8 * time.Hour)

	inRange := domain.NewTimesheetRow(1, from, from.Add(time.Hour), 1)                         // start == from: included
	endsAtBound := domain.NewTimesheetRow(2, from.Add(time.Hour), to, 1)                       // end == to: excluded
	startsBefore := domain.NewTimesheetRow(3, from.Add(-time.Minute), from.Add(time.Hour), 1)  // excluded
	wellInside := domain.NewTimesheetRow(4, from.Add(2*time.Hour), from.Add(3*time.Hour), 1)   // included
	endsAfter := domain.NewTimesheetRow(5, from.Add(time.Hour), to.Add(time.Second), 1)        // excluded

	for _, row := range []domain.TimesheetRow{inRange, endsAtBound, startsBefore, wellInside, endsAfter} {
		require.NoError(t, store.AddToTimesheet(ctx, row))
	}

	it, err := store.GetTimesheet(ctx, from, to)
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)
	require.Empty(t, rowErrs)

	groups := make([]domain.GroupID, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.Group)
	}
	assert.ElementsMatch(t, []domain.GroupID{1, 4}, groups)
}

func TestGetTimesheet_ReusesPreparedStatement(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase, testBase.Add(time.Hour), 1)))

	// Different bounds through the same cached statement.
	for i := 0; i < 3; i++ {
		it, err := store.GetTimesheet(ctx, testBase.Add(-time.Duration(i)*time.Hour), testBase.Add(24*time.Hour))
		require.NoError(t, err)
		rows, rowErrs := collectRows(t, it)
		require.Empty(t, rowErrs)
		assert.Len(t, rows, 1)
	}
}

func TestGetTimesheet_DecodeFailureIsPerRow(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(1, testBase, testBase.Add(time.Hour), 1)))

	// A row written outside the store with unreadable temporal text.
	rawExec(t, store,
		`INSERT INTO timesheet (timesheet_group, start_time, end_time, activity) VALUES (?, ?, ?, ?)`,
		2, "garbage", temporal.Timestamp(testBase.Add(2*time.Hour)), 1)

	require.NoError(t, store.AddToTimesheet(ctx, domain.NewTimesheetRow(3, testBase.Add(3*time.Hour), testBase.Add(4*time.Hour), 1)))

	it, err := store.GetTimesheet(ctx, testBase.Add(-time.Hour), testBase.Add(24*time.Hour))
	require.NoError(t, err)
	rows, rowErrs := collectRows(t, it)

	// The poisoned row yields an error item; everything else decodes.
	require.Len(t, rowErrs, 1)
	assert.True(t, errors.IsErrorType(rowErrs[0], errors.ErrorTypeDatabase))
	require.Len(t, rows, 2)

	groups := []domain.GroupID{rows[0].Group, rows[1].Group}
	assert.ElementsMatch(t, []domain.GroupID{1, 3}, groups)
}
