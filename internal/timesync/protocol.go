// Package timesync implements the two-way time-transfer exchange between a
// clock client and the reference endpoint: a timed GET round trip whose
// response body carries the endpoint's receive and send instants as decimal
// microsecond counts.
package timesync

import (
	"strconv"
	"strings"
	"time"

	"punchclock/internal/errors"
	"punchclock/internal/temporal"
)

// TimeData renders the response body for one sync exchange. The body is
// exactly "<recv_micros>\n<send_micros>" with no trailing delimiter, and is
// produced as a single frame.
type TimeData struct {
	recvMicros int64
	sendMicros int64
	size       int
	sent       bool
}

// NewTimeData captures the receive and send instants of one exchange. The
// frame length is fixed from this point on.
func NewTimeData(recv, send time.Time) *TimeData {
	recvMicros := recv.UnixMicro()
	sendMicros := send.UnixMicro()
	return &TimeData{
		recvMicros: recvMicros,
		sendMicros: sendMicros,
		size:       len(strconv.FormatInt(recvMicros, 10)) + 1 + len(strconv.FormatInt(sendMicros, 10)),
	}
}

// Frame yields the complete body exactly once; after that it reports
// completion with a false second return.
func (td *TimeData) Frame() ([]byte, bool) {
	if td.sent {
		return nil, false
	}
	td.sent = true

	buf := make([]byte, 0, td.size)
	buf = strconv.AppendInt(buf, td.recvMicros, 10)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, td.sendMicros, 10)
	return buf, true
}

// SizeHint reports the exact frame length in bytes, for advertising the
// content length before the frame is written.
func (td *TimeData) SizeHint() int {
	return td.size
}

// ParseTimestamps is the client-side inverse of TimeData: it splits a
// response body into the reference clock's receive and send instants.
func ParseTimestamps(body string) (recv, send time.Time, err error) {
	first, second, found := strings.Cut(body, "\n")
	if !found {
		return time.Time{}, time.Time{}, errors.NewSplitError(body)
	}

	recvMicros, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewIntParseError(first, err)
	}
	sendMicros, err := strconv.ParseInt(second, 10, 64)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewIntParseError(second, err)
	}

	if recv, err = temporal.FromMicroseconds(recvMicros); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if send, err = temporal.FromMicroseconds(sendMicros); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return recv, send, nil
}
