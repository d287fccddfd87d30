package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"jobinsight-engine/internal/query"
	"jobinsight-engine/internal/store"
	"jobinsight-engine/internal/textutil"
)

// Money renders an amount as $1,234.56.
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Rating renders a rating the way Python's str() did for floats: 4.0, 3.85.
func Rating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func FormatJobSummary(s store.JobSummary) string {
	return fmt.Sprintf("Job Title: %s\nCompany: %s\nLocation: %s\n\nOverview:\n%s",
		s.JobTitle, s.CompanyName, s.Location, textutil.PlainText(s.Overview))
}

func FormatCompanyAnalysis(c store.CompanyInfo) string {
	return fmt.Sprintf("Company: %s\nOverall Rating: %s\nCulture Rating: %s\nWork/Life Balance: %s\nCareer Opportunities: %s",
		c.Name, Rating(c.Rating), Rating(c.CultureRating), Rating(c.BalanceRating), Rating(c.CareerRating))
}

func FormatBenefitsInfo(b store.BenefitsInfo) string {
	reviews := "No reviews available"
	if len(b.Reviews) > 0 {
		reviews = strings.Join(b.Reviews, "\n- ")
	}
	return fmt.Sprintf("Benefits Rating: %s\nPay Range: %s\n\nBenefits Summary:\n%s\n\nEmployee Reviews:\n- %s",
		Rating(b.Rating), b.PayRange, textutil.PlainText(b.Summary), reviews)
}

// bullets renders ranked pairs as "- value: N unit" lines.
func bullets(counts []query.Count, unit string) string {
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("- %s: %d %s", c.Value, c.Count, unit))
	}
	return strings.Join(lines, "\n")
}
