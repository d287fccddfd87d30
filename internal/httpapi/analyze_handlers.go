package httpapi

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"jobinsight-engine/internal/analysis"
)

type AnalyzeHandler struct {
	Analysis *analysis.Service
	Log      zerolog.Logger
}

type analyzeReq struct {
	Keyword  string `json:"keyword,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
}

func (h AnalyzeHandler) decode(w http.ResponseWriter, r *http.Request, pick func(analyzeReq) string, field string) (string, bool) {
	var req analyzeReq
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return "", false
	}
	v := strings.TrimSpace(pick(req))
	if v == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_"+field, field+" is required")
		return "", false
	}
	return v, true
}

func (h AnalyzeHandler) Market(w http.ResponseWriter, r *http.Request) {
	kw, ok := h.decode(w, r, func(q analyzeReq) string { return q.Keyword }, "keyword")
	if !ok {
		return
	}
	out, err := h.Analysis.AnalyzeMarket(r.Context(), kw)
	if err != nil {
		writeAnalysisError(w, r, err, kw)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h AnalyzeHandler) Company(w http.ResponseWriter, r *http.Request) {
	name, ok := h.decode(w, r, func(q analyzeReq) string { return q.Company }, "company")
	if !ok {
		return
	}
	out, err := h.Analysis.AnalyzeCompany(r.Context(), name)
	if err != nil {
		writeAnalysisError(w, r, err, name)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h AnalyzeHandler) Location(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.decode(w, r, func(q analyzeReq) string { return q.Location }, "location")
	if !ok {
		return
	}
	out, err := h.Analysis.AnalyzeLocation(r.Context(), loc)
	if err != nil {
		writeAnalysisError(w, r, err, loc)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}
