package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"jobinsight-engine/internal/events"
)

// sseHeartbeat keeps idle streams alive through proxies.
const sseHeartbeat = 15 * time.Second

type EventsHandler struct {
	Hub       *events.Hub
	Heartbeat time.Duration
}

func writeSSE(w io.Writer, f http.Flusher, data string) {
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
	f.Flush()
}

// ServeSSE streams hub events, starting with a hello event so clients can tell
// the stream is live before the first collect finishes.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	writeSSE(w, flusher, events.MakeEvent(RequestIDFrom(r.Context()), events.TypeHello, 1, nil))

	every := h.Heartbeat
	if every <= 0 {
		every = sseHeartbeat
	}
	ping := time.NewTicker(every)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ping.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, flusher, msg)
		}
	}
}
