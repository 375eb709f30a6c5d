package timesync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"punchclock/internal/errors"
	"punchclock/internal/logging"
)

// Client estimates the offset between the local clock and a reference
// endpoint with a timed round trip, caches it, and serves a corrected "now".
//
// The offline flag is a circuit breaker: it is raised while a sync request
// is outstanding or after one failed, and lowered only once a response body
// has been read in full. While it is raised, Now serves the uncorrected
// local clock instead of retrying the network on every call.
//
// A Client belongs to a single owner; the offset state is not locked.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger

	offset    time.Duration
	hasOffset bool
	offline   bool

	now func() time.Time
}

// NewClient builds a client against the reference endpoint at baseURL. The
// round trip carries no timeout of its own; bound it through the request
// context.
func NewClient(baseURL string, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{},
		log:     log,
		now:     time.Now,
	}
}

// RefreshClockOffset performs the timed round trip and replaces the cached
// offset. t1 and t4 are the local instants bracketing the exchange; t2 and
// t3 are the reference clock's receive and send instants from the body. The
// estimate ((t2-t1)+(t3-t4))/2 cancels symmetric network latency.
func (c *Client) RefreshClockOffset(ctx context.Context) error {
	c.offline = true

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/time_sync", nil)
	if err != nil {
		return errors.NewTransportError("build time_sync request", err)
	}

	t1 := c.now()
	resp, err := c.httpc.Do(req)
	t4 := c.now()
	if err != nil {
		return errors.NewTransportError("time_sync round trip", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewTransportError("time_sync round trip",
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError("read time_sync response", err)
	}
	c.offline = false

	t2, t3, err := ParseTimestamps(string(body))
	if err != nil {
		return err
	}

	c.offset = (t2.Sub(t1) + t3.Sub(t4)) / 2
	c.hasOffset = true
	c.log.Info(ctx, "new clock offset", "offset", c.offset)
	return nil
}

// ClockOffset returns the cached offset, refreshing first when nothing is
// cached yet.
func (c *Client) ClockOffset(ctx context.Context) (time.Duration, error) {
	if c.hasOffset {
		return c.offset, nil
	}
	if err := c.RefreshClockOffset(ctx); err != nil {
		return 0, err
	}
	if !c.hasOffset {
		return 0, errors.NewNoOffsetError()
	}
	return c.offset, nil
}

// CachedClockOffset reports the cached offset without any I/O.
func (c *Client) CachedClockOffset() (time.Duration, bool) {
	return c.offset, c.hasOffset
}

// Offline reports whether the client is running on the local clock alone.
func (c *Client) Offline() bool {
	return c.offline
}

// Now returns the local clock corrected by the reference offset. It never
// fails: while offline, or when no offset can be obtained, the correction
// is zero and the failure is logged rather than returned.
func (c *Client) Now(ctx context.Context) time.Time {
	var offset time.Duration
	if !c.offline {
		var err error
		offset, err = c.ClockOffset(ctx)
		if err != nil {
			c.log.Error(ctx, "clock offset unavailable, using local clock", "error", err)
			offset = 0
		}
	}
	return c.now().Add(offset)
}
