package query

import (
	"strings"

	"jobinsight-engine/internal/domain"
)

// FilterByKeyword keeps records whose title or overview contains keyword,
// ignoring case. Input order is preserved.
func FilterByKeyword(records []domain.Record, keyword string) []domain.Record {
	kw := strings.ToLower(keyword)
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.Lower(domain.FieldJobTitle), kw) ||
			strings.Contains(r.Lower(domain.FieldJobOverview), kw) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByLocation keeps records whose job_location, or the discovery input
// location the scrape was run for, contains location (case-insensitive).
func FilterByLocation(records []domain.Record, location string) []domain.Record {
	loc := strings.ToLower(location)
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		discovered := strings.ToLower(r.Nested(domain.FieldDiscoveryInput, domain.FieldDiscoveryLoc, ""))
		if strings.Contains(r.Lower(domain.FieldJobLocation), loc) ||
			strings.Contains(discovered, loc) {
			out = append(out, r)
		}
	}
	return out
}
