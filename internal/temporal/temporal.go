// Package temporal converts between the engine's temporal representations
// and time.Time.
//
// The embedded database hands back timestamps in several shapes depending on
// how a column was declared and written: native integer counts at one of
// four resolutions, day counts for dates, microsecond counts for times of
// day, and fixed-width text. Decode accepts all of them; Encode produces the
// canonical text form this project writes, "YYYY-MM-DD HH:MM:SS" with an
// optional three digit fraction. Everything is UTC.
package temporal

import (
	"time"

	"punchclock/internal/errors"
)

// Unit is the resolution of a native timestamp count.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitMilliseconds
	UnitMicroseconds
	UnitNanoseconds
)

// String returns the string representation of the unit
func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMilliseconds:
		return "milliseconds"
	case UnitMicroseconds:
		return "microseconds"
	case UnitNanoseconds:
		return "nanoseconds"
	default:
		return "unknown"
	}
}

// Kind tags the source representations Decode understands.
type Kind int

const (
	// KindTimestamp is an integer count of Unit since the Unix epoch.
	KindTimestamp Kind = iota
	// KindDate is an integer count of days since the Unix epoch.
	KindDate
	// KindTimeOfDay is an integer count of microseconds since midnight,
	// read relative to the epoch day.
	KindTimeOfDay
	// KindText is one of the fixed-width textual forms.
	KindText
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindDate:
		return "date"
	case KindTimeOfDay:
		return "time_of_day"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is one temporal value as produced by the engine, tagged with its
// representation.
type Value struct {
	Kind  Kind
	Unit  Unit   // set for KindTimestamp
	Count int64  // timestamp count, day count or microsecond count
	Text  string // set for KindText
}

// TimestampValue builds a native timestamp Value.
func TimestampValue(unit Unit, count int64) Value {
	return Value{Kind: KindTimestamp, Unit: unit, Count: count}
}

// DateValue builds a native date Value from a day count.
func DateValue(days int64) Value {
	return Value{Kind: KindDate, Count: days}
}

// TimeOfDayValue builds a native time Value from a microsecond count.
func TimeOfDayValue(micros int64) Value {
	return Value{Kind: KindTimeOfDay, Count: micros}
}

// TextValue builds a textual Value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Textual layouts, dispatched on exact input length.
const (
	layoutTimeOnly         = "15:04:05"
	layoutDateOnly         = "2006-01-02"
	layoutTimeFrac         = "15:04:05.000"
	layoutDateTime         = "2006-01-02 15:04:05"
	layoutDateTimeFrac     = "2006-01-02 15:04:05.000"
	layoutDateTimeFracZone = "2006-01-02 15:04:05.000-07:00"
)

const secondsPerDay = 86400

// Decode converts a Value to a UTC instant.
//
// Native counts convert with exact integer arithmetic, so microsecond and
// nanosecond precision survives. Textual values are matched to a layout by
// their length; anything of unrecognised length is read as a date from its
// first ten characters.
func Decode(v Value) (time.Time, error) {
	switch v.Kind {
	case KindTimestamp:
		return decodeCount(v.Unit, v.Count)
	case KindDate:
		return time.Unix(v.Count*secondsPerDay, 0).UTC(), nil
	case KindTimeOfDay:
		return time.Unix(v.Count/1e6, (v.Count%1e6)*1000).UTC(), nil
	case KindText:
		return DecodeText(v.Text)
	default:
		return time.Time{}, errors.NewUnsupportedSourceError(v.Kind.String())
	}
}

func decodeCount(unit Unit, count int64) (time.Time, error) {
	switch unit {
	case UnitSeconds:
		return time.Unix(count, 0).UTC(), nil
	case UnitMilliseconds:
		return time.Unix(count/1e3, (count%1e3)*1e6).UTC(), nil
	case UnitMicroseconds:
		return time.Unix(count/1e6, (count%1e6)*1e3).UTC(), nil
	case UnitNanoseconds:
		return time.Unix(count/1e9, count%1e9).UTC(), nil
	default:
		return time.Time{}, errors.NewUnsupportedSourceError(unit.String())
	}
}

// DecodeText converts one of the fixed-width textual forms to a UTC instant.
// Time-of-day forms land on the epoch day.
func DecodeText(s string) (time.Time, error) {
	switch len(s) {
	case 8:
		return decodeTimeOfDayText(layoutTimeOnly, s)
	case 10:
		return parseInUTC(layoutDateOnly, s)
	case 12:
		return decodeTimeOfDayText(layoutTimeFrac, s)
	case 19:
		return parseInUTC(layoutDateTime, s)
	case 23:
		return parseInUTC(layoutDateTimeFrac, s)
	case 29:
		t, err := time.Parse(layoutDateTimeFracZone, s)
		if err != nil {
			return time.Time{}, errors.NewTemporalParseError(layoutDateTimeFracZone, s, err)
		}
		return t.UTC(), nil
	default:
		if len(s) > len(layoutDateOnly) {
			s = s[:len(layoutDateOnly)]
		}
		return parseInUTC(layoutDateOnly, s)
	}
}

func parseInUTC(layout, s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewTemporalParseError(layout, s, err)
	}
	return t, nil
}

func decodeTimeOfDayText(layout, s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewTemporalParseError(layout, s, err)
	}
	return time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
}

// Encode renders an instant in the canonical storage form. Whole-second
// instants take the 19 character layout; anything finer carries exactly
// three fraction digits, flooring sub-millisecond detail, so that stored
// text always decodes through one of the recognised lengths.
func Encode(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(layoutDateTime)
	}
	return t.Format(layoutDateTimeFrac)
}

// Instants representable as microsecond counts are bounded the same way on
// both sides of the time-sync exchange.
var (
	minInstant = time.Date(-9999, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999_999_999, time.UTC)
)

// FromMicroseconds converts a count of microseconds since the Unix epoch to
// an instant, rejecting counts outside the representable range.
func FromMicroseconds(micros int64) (time.Time, error) {
	t := time.UnixMicro(micros).UTC()
	if t.Before(minInstant) || t.After(maxInstant) {
		return time.Time{}, errors.NewInstantRangeError(micros)
	}
	return t, nil
}

// ToMicroseconds converts an instant to a count of microseconds since the
// Unix epoch, flooring finer detail.
func ToMicroseconds(t time.Time) int64 {
	return t.UnixMicro()
}
