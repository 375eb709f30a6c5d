package sqlite

import (
	"database/sql"

	"punchclock/internal/domain"
)

// TimesheetIter streams the result of one timesheet range query. Rows are
// decoded lazily as the caller advances:
//
//	iter, err := store.GetTimesheet(ctx, from, to)
//	if err != nil { ... }
//	defer iter.Close()
//	for iter.Next() {
//		row, err := iter.Row()
//		...
//	}
//	if err := iter.Err(); err != nil { ... }
type TimesheetIter struct {
	rows *sql.Rows
}

// Next advances to the next result row.
func (it *TimesheetIter) Next() bool {
	return it.rows.Next()
}

// Row decodes the current row. A decode failure belongs to this row alone;
// the iterator stays usable and later rows may still decode cleanly.
func (it *TimesheetIter) Row() (domain.TimesheetRow, error) {
	row, err := ScanTimesheetRow(it.rows)
	if err != nil {
		return domain.TimesheetRow{}, HandleDatabaseError("decode timesheet row", err)
	}
	return row, nil
}

// Err reports the first error hit while advancing, if any.
func (it *TimesheetIter) Err() error {
	if err := it.rows.Err(); err != nil {
		return HandleDatabaseError("iterate timesheet rows", err)
	}
	return nil
}

// Close releases the underlying result set and its connection.
func (it *TimesheetIter) Close() error {
	return it.rows.Close()
}
