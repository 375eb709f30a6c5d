package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"punchclock/internal/domain"
	"punchclock/internal/errors"
	"punchclock/internal/temporal"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: punchclock import <file.csv>")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	count, err := c.importRows(ctx, file)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d intervals from %s\n", count, args[0])
	return nil
}

// importRows loads intervals in the history CSV layout:
// group,start_time,end_time,activity with a leading header line. Rows are
// buffered and written in one final flush, so a malformed line aborts the
// import with nothing stored.
func (c *ImportCommand) importRows(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	appender, err := c.app.store.TimesheetAppender(ctx)
	if err != nil {
		return 0, c.errorHandler.Handle("import timesheet", err)
	}
	defer appender.Close()

	count := 0
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if line == 1 && record[0] == "group" {
			continue
		}

		row, err := parseImportRecord(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, c.errorHandler.HandleSimple(err))
		}
		if err := appender.AppendRow(row); err != nil {
			return 0, fmt.Errorf("line %d: %w", line, c.errorHandler.HandleSimple(err))
		}
		count++
	}

	if err := appender.Flush(ctx); err != nil {
		return 0, c.errorHandler.Handle("import timesheet", err)
	}
	return count, nil
}

// parseImportRecord decodes one CSV record into an interval.
func parseImportRecord(record []string) (domain.TimesheetRow, error) {
	group, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return domain.TimesheetRow{}, errors.NewInvalidInputError("group", record[0], "must be an integer")
	}

	start, err := temporal.DecodeText(record[1])
	if err != nil {
		return domain.TimesheetRow{}, err
	}
	end, err := temporal.DecodeText(record[2])
	if err != nil {
		return domain.TimesheetRow{}, err
	}

	activity, err := strconv.ParseInt(record[3], 10, 32)
	if err != nil {
		return domain.TimesheetRow{}, errors.NewInvalidInputError("activity", record[3], "must be an integer")
	}

	return domain.NewTimesheetRow(domain.GroupID(group), start, end, domain.Activity(activity)), nil
}
