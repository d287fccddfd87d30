package store

import "jobinsight-engine/internal/domain"

// Fallback text shown when the selected record lacks a field.
const (
	NotAvailable         = "Not available"
	NoOverview           = "No overview available"
	NoBenefitsSummary    = "No benefits summary available"
	PayRangeNotAvailable = "Salary range not available"
	UnknownCompany       = "Unknown Company"
)

type JobSummary struct {
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Overview    string `json:"overview"`
}

type CompanyInfo struct {
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	CultureRating float64 `json:"culture_rating"`
	BalanceRating float64 `json:"balance_rating"`
	CareerRating  float64 `json:"career_rating"`
}

type BenefitsInfo struct {
	Rating   float64  `json:"rating"`
	Summary  string   `json:"summary"`
	Reviews  []string `json:"reviews"`
	PayRange string   `json:"pay_range"`
}

func (s *Store) JobSummary() JobSummary {
	return JobSummary{
		JobTitle:    s.selectedText(domain.FieldJobTitle, NotAvailable),
		CompanyName: s.selectedText(domain.FieldCompanyName, NotAvailable),
		Location:    s.selectedText(domain.FieldJobLocation, NotAvailable),
		Overview:    s.selectedText(domain.FieldJobOverview, NoOverview),
	}
}

func (s *Store) CompanyInfo() CompanyInfo {
	return CompanyInfo{
		Name:          s.selectedText(domain.FieldCompanyName, NotAvailable),
		Rating:        s.selectedNumber(domain.FieldCompanyRating),
		CultureRating: s.selectedNumber(domain.FieldCultureRating),
		BalanceRating: s.selectedNumber(domain.FieldBalanceRating),
		CareerRating:  s.selectedNumber(domain.FieldCareerRating),
	}
}

func (s *Store) BenefitsInfo() BenefitsInfo {
	return BenefitsInfo{
		Rating:   s.selectedNumber(domain.FieldBenefitsRating),
		Summary:  s.selectedText(domain.FieldBenefitsSummary, NoBenefitsSummary),
		Reviews:  s.selectedList(domain.FieldBenefitReviews),
		PayRange: s.selectedText(domain.FieldPayRange, PayRangeNotAvailable),
	}
}

func (s *Store) CompanyName() string {
	return s.selectedText(domain.FieldCompanyName, UnknownCompany)
}

func (s *Store) selectedText(field, def string) string {
	if v, ok := s.SelectedField(field, def).(string); ok {
		return v
	}
	return def
}

// ratings default to 0.0
func (s *Store) selectedNumber(field string) float64 {
	if v, ok := domain.ToFloat(s.SelectedField(field, 0.0)); ok {
		return v
	}
	return 0.0
}

func (s *Store) selectedList(field string) []string {
	rec := domain.Record{field: s.SelectedField(field, []any{})}
	if out := rec.Strings(field); out != nil {
		return out
	}
	return []string{}
}
