package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinsight-engine/internal/domain"
	"jobinsight-engine/internal/query"
	"jobinsight-engine/internal/store"
)

func TestMoneyAndRating(t *testing.T) {
	assert.Equal(t, "$100,000.00", Money(100000))
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$1,234.57", Money(1234.567))
	assert.Equal(t, "-$50.00", Money(-50))

	assert.Equal(t, "4.0", Rating(4))
	assert.Equal(t, "3.85", Rating(3.85))
	assert.Equal(t, "0.0", Rating(0))
}

func TestSummary(t *testing.T) {
	s := store.FromRecords([]domain.Record{{
		"company_name": "Acme",
		"job_title":    "Engineer",
		"job_location": "Austin",
		"job_overview": "<p>Build rockets.</p><ul><li>Go</li></ul>",
	}})
	require.True(t, s.SelectCompany("acme"))

	got := Summary(s.JobSummary())
	assert.True(t, strings.HasPrefix(got, SystemPrompt+"\n\n"))
	assert.Contains(t, got, "Summarize the job posting for Engineer at Acme.")
	assert.True(t, strings.HasSuffix(got, "Job Title: Engineer\nCompany: Acme\nLocation: Austin\n\nOverview:\nBuild rockets.\n- Go"))
}

func TestCompanyPrompts_Defaults(t *testing.T) {
	s := store.FromRecords(nil)
	s.SelectCompany("Nope")

	got := CompanyAnalysis("Nope", s.CompanyInfo())
	assert.Contains(t, got, "Analyze Nope based on the following metrics:")
	assert.Contains(t, got, "- Company Rating: 0.0")

	got = BenefitsAnalysis("Nope", s.BenefitsInfo())
	assert.Contains(t, got, "- Benefits Rating: 0.0")
	assert.Contains(t, got, "Pay Range: Salary range not available")
	assert.Contains(t, got, "Employee Reviews:\n- No reviews available")

	got = CultureInsights("Acme", store.CompanyInfo{Name: "Acme", Rating: 4})
	assert.True(t, strings.HasPrefix(got, "Provide insights about the company culture at Acme"))
	assert.Contains(t, got, "Company: Acme\nOverall Rating: 4.0")
	assert.Equal(t, "Summarize the job posting for Not available at Not available. Include key responsibilities and requirements.",
		JobSummaryRequest(s.JobSummary()))
}

func TestFormatBenefitsInfo_Reviews(t *testing.T) {
	got := FormatBenefitsInfo(store.BenefitsInfo{
		Rating:   4.5,
		Summary:  "Health and dental",
		Reviews:  []string{"Great 401k", "Free lunch"},
		PayRange: "$90K - $120K",
	})
	assert.Equal(t, "Benefits Rating: 4.5\nPay Range: $90K - $120K\n\nBenefits Summary:\nHealth and dental\n\nEmployee Reviews:\n- Great 401k\n- Free lunch", got)
}

func TestFormatCompanyAnalysis(t *testing.T) {
	got := FormatCompanyAnalysis(store.CompanyInfo{Name: "Acme", Rating: 4, CultureRating: 3.5, BalanceRating: 4.1, CareerRating: 3})
	assert.Equal(t, "Company: Acme\nOverall Rating: 4.0\nCulture Rating: 3.5\nWork/Life Balance: 4.1\nCareer Opportunities: 3.0", got)
}

func TestStatsAnalysis(t *testing.T) {
	stats := query.Statistics{
		TotalJobs:    2,
		AvgSalary:    100000,
		SalaryRange:  query.SalaryRange{90000, 110000},
		TopLocations: []query.Count{{Value: "Austin", Count: 2}},
		TopCompanies: []query.Count{{Value: "Acme", Count: 2}},
	}
	got := StatsAnalysis(stats, "engineer")

	assert.Contains(t, got, "keyword 'engineer'")
	assert.Contains(t, got, "Total Jobs: 2")
	assert.Contains(t, got, "Average Salary: $100,000.00")
	assert.Contains(t, got, "Salary Range: $90,000.00 - $110,000.00")
	assert.Contains(t, got, "- Austin: 2 jobs")
	assert.Contains(t, got, "- Acme: 2 positions")
}

func TestTrendAndLocationPrompts(t *testing.T) {
	benefits := []query.Count{{Value: "401k", Count: 3}, {Value: "Dental", Count: 1}}
	assert.Contains(t, BenefitsTrends(benefits, "nurse"), "- 401k: 3 mentions\n- Dental: 1 mentions")

	titles := []query.Count{{Value: "", Count: 2}}
	assert.Contains(t, TitleTrends(titles, "nurse"), "- : 2 positions")

	loc := query.LocationStatistics{
		TotalJobs:    1,
		TopCompanies: []query.Count{{Value: "Globex", Count: 1}},
		TopTitles:    []query.Count{{Value: "Manager", Count: 1}},
	}
	got := LocationAnalysis(loc, "Dallas")
	assert.Contains(t, got, "Analyze job opportunities in Dallas:")
	assert.Contains(t, got, "Total Jobs Available: 1")
	assert.Contains(t, got, "Salary Range: $0.00 - $0.00")
	assert.Contains(t, got, "- Manager: 1 openings")
	assert.Contains(t, got, "job market in Dallas?")
}

func TestMarketPromptOrder(t *testing.T) {
	r := query.Market([]domain.Record{{"job_title": "Engineer", "company_name": "Acme"}}, "engineer")
	got := Market(r)
	assert.Len(t, got, 3)
	assert.Contains(t, got[0], "job market statistics")
	assert.Contains(t, got[1], "most common benefits")
	assert.Contains(t, got[2], "trending job titles")
}
