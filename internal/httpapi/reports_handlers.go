package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"jobinsight-engine/internal/analysis"
)

type ReportsHandler struct {
	Analysis *analysis.Service
}

func (h ReportsHandler) Market(w http.ResponseWriter, r *http.Request) {
	kw := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if kw == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_keyword", "keyword query parameter is required")
		return
	}
	WriteJSON(w, http.StatusOK, h.Analysis.Market(kw))
}

func (h ReportsHandler) Location(w http.ResponseWriter, r *http.Request) {
	loc := strings.TrimSpace(r.URL.Query().Get("location"))
	if loc == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_location", "location query parameter is required")
		return
	}
	report, err := h.Analysis.Location(loc)
	if errors.Is(err, analysis.ErrNoJobs) {
		WriteError(w, r, http.StatusNotFound, "no_jobs", fmt.Sprintf("No jobs found in %s", loc))
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// CompanyByPath serves /companies/{name}. The name is matched ignoring case.
func (h ReportsHandler) CompanyByPath(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/companies/"))
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "company name is required")
		return
	}
	view, err := h.Analysis.Company(name)
	if err != nil {
		writeAnalysisError(w, r, err, name)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// writeAnalysisError maps service errors onto API errors.
func writeAnalysisError(w http.ResponseWriter, r *http.Request, err error, subject string) {
	switch {
	case errors.Is(err, analysis.ErrCompanyNotFound):
		WriteError(w, r, http.StatusNotFound, "company_not_found", fmt.Sprintf("No data found for company: %s", subject))
	case errors.Is(err, analysis.ErrNoJobs):
		WriteError(w, r, http.StatusNotFound, "no_jobs", fmt.Sprintf("No jobs found in %s", subject))
	case errors.Is(err, analysis.ErrNoGenerator):
		WriteError(w, r, http.StatusServiceUnavailable, "llm_unavailable", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
