package prompt

import (
	"fmt"

	"jobinsight-engine/internal/query"
	"jobinsight-engine/internal/store"
)

// Summary is the job summary prompt for an already selected posting.
func Summary(sum store.JobSummary) string {
	return SystemPrompt + "\n\n" + JobSummaryRequest(sum) + "\n\n" + FormatJobSummary(sum)
}

func JobSummaryRequest(sum store.JobSummary) string {
	return fmt.Sprintf(jobSummaryTmpl, sum.JobTitle, sum.CompanyName)
}

func CompanyAnalysis(company string, info store.CompanyInfo) string {
	return fmt.Sprintf(companyAnalysisTmpl, company,
		Rating(info.Rating), Rating(info.CultureRating), Rating(info.BalanceRating), Rating(info.CareerRating))
}

// BenefitsAnalysis includes the formatted reviews and pay range under the
// template so the model sees what it is asked to analyze.
func BenefitsAnalysis(company string, info store.BenefitsInfo) string {
	return fmt.Sprintf(benefitsAnalysisTmpl, company, Rating(info.Rating)) + "\n\n" + FormatBenefitsInfo(info)
}

func CultureInsights(company string, info store.CompanyInfo) string {
	return fmt.Sprintf(cultureInsightsTmpl, company) + "\n\n" + FormatCompanyAnalysis(info)
}

func StatsAnalysis(stats query.Statistics, keyword string) string {
	return fmt.Sprintf(jobStatsTmpl, keyword, stats.TotalJobs,
		Money(stats.AvgSalary), Money(stats.SalaryRange.Min()), Money(stats.SalaryRange.Max()),
		bullets(stats.TopLocations, "jobs"), bullets(stats.TopCompanies, "positions"))
}

func BenefitsTrends(benefits []query.Count, keyword string) string {
	return fmt.Sprintf(benefitsTrendsTmpl, keyword, bullets(benefits, "mentions"))
}

func TitleTrends(titles []query.Count, keyword string) string {
	return fmt.Sprintf(titleTrendsTmpl, keyword, bullets(titles, "positions"))
}

func LocationAnalysis(stats query.LocationStatistics, location string) string {
	return fmt.Sprintf(locationAnalysisTmpl, location, stats.TotalJobs,
		Money(stats.AvgSalary), Money(stats.SalaryRange.Min()), Money(stats.SalaryRange.Max()),
		bullets(stats.TopCompanies, "positions"), bullets(stats.TopTitles, "openings"), location)
}

// Market renders the three market prompts in the order they are sent.
func Market(r query.MarketReport) []string {
	return []string{
		StatsAnalysis(r.Stats, r.Keyword),
		BenefitsTrends(r.Benefits, r.Keyword),
		TitleTrends(r.Titles, r.Keyword),
	}
}
