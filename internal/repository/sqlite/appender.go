package sqlite

import (
	"context"
	"strings"

	"punchclock/internal/domain"
	"punchclock/internal/temporal"
	"punchclock/internal/validation"
)

// appendChunkRows caps how many buffered rows are written per INSERT
// statement, keeping bind parameter counts well under the engine limit.
const appendChunkRows = 500

// TimesheetAppender buffers intervals client-side for bulk loading. Rows
// become visible to readers only after Flush; each flushed chunk is one
// autocommitting statement, and rows never flushed are simply dropped. The
// appender holds its pooled connection until Close.
type TimesheetAppender struct {
	conn      *Conn
	validator *validation.TimesheetValidator
	pending   []domain.TimesheetRow
}

// AppendRow buffers one interval.
func (a *TimesheetAppender) AppendRow(row domain.TimesheetRow) error {
	if err := a.validator.ValidateRow(row); err != nil {
		return err
	}
	a.pending = append(a.pending, row)
	return nil
}

// Flush writes the buffered intervals. On failure the unwritten rows stay
// buffered, so a retry picks up where the failure happened.
func (a *TimesheetAppender) Flush(ctx context.Context) error {
	for len(a.pending) > 0 {
		n := min(len(a.pending), appendChunkRows)
		chunk := a.pending[:n]

		args := make([]interface{}, 0, n*4)
		for _, row := range chunk {
			args = append(args,
				int64(row.Group),
				temporal.Timestamp(row.StartTime),
				temporal.Timestamp(row.EndTime),
				int32(row.Activity),
			)
		}

		query := "INSERT INTO timesheet (timesheet_group, start_time, end_time, activity) VALUES " +
			valuesClause(n, 4)
		if _, err := a.conn.ExecContext(ctx, query, args...); err != nil {
			return HandleDatabaseError("flush timesheet appender", err)
		}

		a.pending = a.pending[n:]
	}
	return nil
}

// Close releases the appender's connection. Buffered rows not yet flushed
// are discarded.
func (a *TimesheetAppender) Close() error {
	a.pending = nil
	return a.conn.Release()
}

// TimesheetTagAppender buffers group-tag associations for bulk loading, with
// the same flush semantics as TimesheetAppender.
type TimesheetTagAppender struct {
	conn      *Conn
	validator *validation.TimesheetValidator
	pending   []domain.TimesheetTagRow
}

// AppendRow buffers one association.
func (a *TimesheetTagAppender) AppendRow(row domain.TimesheetTagRow) error {
	if err := a.validator.ValidateTagRow(row); err != nil {
		return err
	}
	a.pending = append(a.pending, row)
	return nil
}

// Flush writes the buffered associations.
func (a *TimesheetTagAppender) Flush(ctx context.Context) error {
	for len(a.pending) > 0 {
		n := min(len(a.pending), appendChunkRows)
		chunk := a.pending[:n]

		args := make([]interface{}, 0, n*2)
		for _, row := range chunk {
			args = append(args, int64(row.Group), int64(row.TagID))
		}

		query := "INSERT INTO timesheet_tag (timesheet_group, tag_id) VALUES " + valuesClause(n, 2)
		if _, err := a.conn.ExecContext(ctx, query, args...); err != nil {
			return HandleDatabaseError("flush timesheet tag appender", err)
		}

		a.pending = a.pending[n:]
	}
	return nil
}

// Close releases the appender's connection. Buffered rows not yet flushed
// are discarded.
func (a *TimesheetTagAppender) Close() error {
	a.pending = nil
	return a.conn.Release()
}

// valuesClause renders "(?, ...), (?, ...), ..." for nRows rows of nCols
// placeholders.
func valuesClause(nRows, nCols int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", nCols), ", ") + ")"

	var b strings.Builder
	b.Grow(nRows * (len(row) + 2))
	for i := 0; i < nRows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(row)
	}
	return b.String()
}
