package domain

import (
	"encoding/json"
	"strings"
)

// Field names read by the engine. Any other key in a scraped record is carried
// along untouched but never interpreted.
const (
	FieldJobTitle       = "job_title"
	FieldCompanyName    = "company_name"
	FieldJobLocation    = "job_location"
	FieldJobOverview    = "job_overview"
	FieldPayMedian      = "pay_median_glassdoor"
	FieldPayRange       = "pay_range_glassdoor_est"
	FieldBenefitReviews = "employee_benefit_reviews"
	FieldDiscoveryInput = "discovery_input"
	FieldDiscoveryLoc   = "location" // nested under discovery_input

	FieldCompanyRating   = "company_rating"
	FieldCultureRating   = "company_culture_and_values_rating"
	FieldBalanceRating   = "company_work/life_balance_rating"
	FieldCareerRating    = "company_career_opportunities_rating"
	FieldBenefitsRating  = "company_benefits_rating"
	FieldBenefitsSummary = "company_benefits_employer_summary"
)

// Record is one scraped employer/job posting. Fields are sparse: a missing key
// means "unknown" and is resolved by the caller's default.
type Record map[string]any

// Get returns the raw value stored under field, or def when the key is absent.
func (r Record) Get(field string, def any) any {
	if r == nil {
		return def
	}
	v, ok := r[field]
	if !ok {
		return def
	}
	return v
}

// Has reports whether field is present (a JSON null still counts as present).
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// String returns field as text. Non-string values fall back to def.
func (r Record) String(field, def string) string {
	s, ok := r.Get(field, nil).(string)
	if !ok {
		return def
	}
	return s
}

// Float returns field as a number and whether it held one.
func (r Record) Float(field string) (float64, bool) {
	return ToFloat(r.Get(field, nil))
}

// Strings returns field as a list of text values. Non-text elements are skipped;
// a missing or non-list field yields nil.
func (r Record) Strings(field string) []string {
	switch v := r.Get(field, nil).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Nested returns the text stored at parent.child, or def when either level is
// missing or not the expected shape.
func (r Record) Nested(parent, child, def string) string {
	var sub map[string]any
	switch v := r.Get(parent, nil).(type) {
	case map[string]any:
		sub = v
	case Record:
		sub = v
	default:
		return def
	}
	s, ok := sub[child].(string)
	if !ok {
		return def
	}
	return s
}

// Lower returns the lower-cased text of field, empty when absent.
func (r Record) Lower(field string) string {
	return strings.ToLower(r.String(field, ""))
}

// ToFloat converts a decoded JSON value into a number, reporting success.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
