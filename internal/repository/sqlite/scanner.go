package sqlite

import (
	"punchclock/internal/domain"
	"punchclock/internal/temporal"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanTimesheetRow scans a single interval from a database row
func ScanTimesheetRow(scanner Scanner) (domain.TimesheetRow, error) {
	var row domain.TimesheetRow
	var start, end temporal.Timestamp

	err := scanner.Scan(
		&row.Group,
		&start,
		&end,
		&row.Activity,
	)
	if err != nil {
		return domain.TimesheetRow{}, err
	}

	row.StartTime = start.Time()
	row.EndTime = end.Time()
	return row, nil
}

// ScanTag scans a single tag from a database row
func ScanTag(scanner Scanner) (domain.Tag, error) {
	var tag domain.Tag
	if err := scanner.Scan(&tag.ID, &tag.Label); err != nil {
		return domain.Tag{}, err
	}
	return tag, nil
}
