package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"jobinsight-engine/internal/collect"
)

type CollectHandler struct {
	Status  *collect.Tracker
	Refresh func(ctx context.Context) error
	Log     zerolog.Logger
}

func (h CollectHandler) StatusJSON(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Status.Load())
}

// Run starts a refresh in the background and returns immediately. Progress
// is visible on /collect/status and the event stream.
func (h CollectHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.Refresh == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "collect_unavailable", "collect is not configured")
		return
	}
	if h.Status.Load().Running {
		WriteJSON(w, http.StatusConflict, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	reqID := RequestIDFrom(r.Context())
	go func() {
		err := h.Refresh(context.Background())
		if err != nil && !errors.Is(err, collect.ErrAlreadyRunning) {
			h.Log.Error().Err(err).Str("request_id", reqID).Msg("collect run failed")
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}
