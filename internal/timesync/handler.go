package timesync

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"punchclock/internal/logging"
)

type connTimeKey struct{}

// WithConnTime is an http.Server.ConnContext hook. It stamps every accepted
// connection with its accept instant so the handler can report a receive
// time from before request parsing.
func WithConnTime(ctx context.Context, _ net.Conn) context.Context {
	return context.WithValue(ctx, connTimeKey{}, time.Now())
}

// Handler serves the time_sync exchange. The receive instant comes from the
// connection-accept stamp when the server installed WithConnTime, otherwise
// from handler entry; the send instant is captured immediately before the
// frame is rendered. The body goes out as one write with its exact length
// advertised.
func Handler(clock func() time.Time, log logging.Logger) http.Handler {
	if clock == nil {
		clock = time.Now
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		recv, ok := r.Context().Value(connTimeKey{}).(time.Time)
		if !ok {
			recv = clock()
		}

		data := NewTimeData(recv, clock())
		frame, _ := data.Frame()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(data.SizeHint()))
		if _, err := w.Write(frame); err != nil {
			log.Error(r.Context(), "failed to write time_sync response", "error", err)
		}
	})
}
