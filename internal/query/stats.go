package query

import (
	"jobinsight-engine/internal/domain"
)

// SalaryRange is (min, max) over the records that carry a median salary.
type SalaryRange [2]float64

func (r SalaryRange) Min() float64 { return r[0] }
func (r SalaryRange) Max() float64 { return r[1] }

// Statistics is the market report for a set of matched records.
type Statistics struct {
	TotalJobs    int         `json:"total_jobs"`
	AvgSalary    float64     `json:"avg_salary"`
	SalaryRange  SalaryRange `json:"salary_range"`
	TopLocations []Count     `json:"top_locations"`
	TopCompanies []Count     `json:"top_companies"`
}

// LocationStatistics is Statistics for a location-filtered set; location is
// already fixed, so job titles are ranked instead.
type LocationStatistics struct {
	TotalJobs    int         `json:"total_jobs"`
	AvgSalary    float64     `json:"avg_salary"`
	SalaryRange  SalaryRange `json:"salary_range"`
	TopCompanies []Count     `json:"top_companies"`
	TopTitles    []Count     `json:"top_titles"`
}

// JobStatistics summarizes records. Empty input gives zero counts, a (0, 0)
// range and empty rankings.
func JobStatistics(records []domain.Record) Statistics {
	avg, rng := salaryStats(records)
	return Statistics{
		TotalJobs:    len(records),
		AvgSalary:    avg,
		SalaryRange:  rng,
		TopLocations: TopN(presentText(records, domain.FieldJobLocation), TopStatsN),
		TopCompanies: TopN(presentText(records, domain.FieldCompanyName), TopStatsN),
	}
}

// LocationStats summarizes records already narrowed by FilterByLocation.
func LocationStats(records []domain.Record) LocationStatistics {
	avg, rng := salaryStats(records)
	return LocationStatistics{
		TotalJobs:    len(records),
		AvgSalary:    avg,
		SalaryRange:  rng,
		TopCompanies: TopN(presentText(records, domain.FieldCompanyName), TopStatsN),
		TopTitles:    TopN(titles(records), TopStatsN),
	}
}

// CommonBenefits ranks every benefit mention across records, top 10.
func CommonBenefits(records []domain.Record) []Count {
	var all []string
	for _, r := range records {
		all = append(all, r.Strings(domain.FieldBenefitReviews)...)
	}
	return TopN(all, TopBenefitsN)
}

// TrendingTitles ranks job titles, top 10. A record without a title counts as
// the empty title, which can itself rank.
func TrendingTitles(records []domain.Record) []Count {
	return TopN(titles(records), TopTitlesN)
}

// salaryStats returns the mean and (min, max) of pay_median_glassdoor over the
// records that define it numerically; zeros when none do.
func salaryStats(records []domain.Record) (float64, SalaryRange) {
	var (
		sum    float64
		n      int
		lo, hi float64
	)
	for _, r := range records {
		v, ok := r.Float(domain.FieldPayMedian)
		if !ok {
			continue
		}
		if n == 0 || v < lo {
			lo = v
		}
		if n == 0 || v > hi {
			hi = v
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, SalaryRange{0, 0}
	}
	return sum / float64(n), SalaryRange{lo, hi}
}

// presentText collects field from the records that define it as text.
func presentText(records []domain.Record, field string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if s, ok := r.Get(field, nil).(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func titles(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.String(domain.FieldJobTitle, ""))
	}
	return out
}
