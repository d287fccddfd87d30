package httpapi

import (
	"net/http"
	"time"

	"jobinsight-engine/internal/analysis"
	"jobinsight-engine/internal/events"
)

type HealthHandler struct {
	Analysis *analysis.Service
	Hub      *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ds := h.Analysis.Dataset()
	body := map[string]any{
		"ok":      true,
		"time":    time.Now().Format(time.RFC3339),
		"records": ds.Len(),
		"source":  ds.Source(),
		"warning": ds.Warning(),
		"llm":     h.Analysis.HasGenerator(),
	}
	if h.Hub != nil {
		body["events"] = h.Hub.Stats()
	}
	WriteJSON(w, http.StatusOK, body)
}
