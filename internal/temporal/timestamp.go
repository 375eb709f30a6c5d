package temporal

import (
	"database/sql/driver"
	"fmt"
	"time"

	"punchclock/internal/errors"
)

// Timestamp adapts time.Time to the engine's temporal columns. It writes the
// canonical text form and reads back whatever representation the engine
// reports for the column.
type Timestamp time.Time

// Value implements driver.Valuer.
func (ts Timestamp) Value() (driver.Value, error) {
	return Encode(time.Time(ts)), nil
}

// Scan implements sql.Scanner.
func (ts *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		t, err := DecodeText(v)
		if err != nil {
			return err
		}
		*ts = Timestamp(t)
		return nil
	case []byte:
		t, err := DecodeText(string(v))
		if err != nil {
			return err
		}
		*ts = Timestamp(t)
		return nil
	case int64:
		t, err := decodeCount(UnitMicroseconds, v)
		if err != nil {
			return err
		}
		*ts = Timestamp(t)
		return nil
	case time.Time:
		*ts = Timestamp(v.UTC())
		return nil
	default:
		return errors.NewUnsupportedSourceError(fmt.Sprintf("%T", src))
	}
}

// Time returns the instant as a time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// String renders the canonical storage form.
func (ts Timestamp) String() string {
	return Encode(time.Time(ts))
}
