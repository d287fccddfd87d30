package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"jobinsight-engine/internal/analysis"
	"jobinsight-engine/internal/prompt"
	"jobinsight-engine/internal/query"
	"jobinsight-engine/internal/textutil"
)

const divider = "--------------------------------------------------------------------------------"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCounts(w io.Writer, title, label string, counts []query.Count) error {
	fmt.Fprintf(w, "\n%s\n", title)
	table := tablewriter.NewWriter(w)
	table.Header(label, "Count")
	for _, c := range counts {
		if err := table.Append(c.Value, strconv.Itoa(c.Count)); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderSummary(w io.Writer, rows [][2]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	return table.Render()
}

func salaryRows(total int, avg float64, r query.SalaryRange) [][2]string {
	return [][2]string{
		{"Total Jobs", strconv.Itoa(total)},
		{"Average Salary", prompt.Money(avg)},
		{"Salary Range", prompt.Money(r.Min()) + " - " + prompt.Money(r.Max())},
	}
}

func RenderMarket(w io.Writer, r query.MarketReport) error {
	fmt.Fprintf(w, "Market Statistics: %s\n", r.Keyword)
	if err := renderSummary(w, salaryRows(r.Stats.TotalJobs, r.Stats.AvgSalary, r.Stats.SalaryRange)); err != nil {
		return err
	}
	if err := renderCounts(w, "Top Locations", "Location", r.Stats.TopLocations); err != nil {
		return err
	}
	if err := renderCounts(w, "Top Companies", "Company", r.Stats.TopCompanies); err != nil {
		return err
	}
	if err := renderCounts(w, "Trending Job Titles", "Title", r.Titles); err != nil {
		return err
	}
	return renderCounts(w, "Common Benefits", "Benefit", r.Benefits)
}

func RenderLocation(w io.Writer, r query.LocationReport) error {
	fmt.Fprintf(w, "Location Statistics: %s\n", r.Location)
	if err := renderSummary(w, salaryRows(r.Stats.TotalJobs, r.Stats.AvgSalary, r.Stats.SalaryRange)); err != nil {
		return err
	}
	if err := renderCounts(w, "Top Companies", "Company", r.Stats.TopCompanies); err != nil {
		return err
	}
	return renderCounts(w, "Common Job Titles", "Title", r.Stats.TopTitles)
}

func RenderCompany(w io.Writer, v analysis.CompanyView) error {
	fmt.Fprintf(w, "Company: %s\n", v.Company)
	rating := func(x float64) string { return prompt.Rating(x) + "/5.0" }
	rows := [][2]string{
		{"Overall Rating", rating(v.Info.Rating)},
		{"Culture Rating", rating(v.Info.CultureRating)},
		{"Work/Life Balance", rating(v.Info.BalanceRating)},
		{"Career Opportunities", rating(v.Info.CareerRating)},
		{"Benefits Rating", rating(v.Benefits.Rating)},
		{"Pay Range", v.Benefits.PayRange},
		{"Job Title", v.Job.JobTitle},
		{"Location", v.Job.Location},
	}
	if err := renderSummary(w, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nBenefits Summary:\n%s\n", textutil.CleanText(v.Benefits.Summary))
	fmt.Fprintf(w, "\nJob Overview:\n%s\n", textutil.Truncate(textutil.PlainText(v.Job.Overview), 1500))
	return nil
}

// RenderResponses prints model answers the way the interactive assistant did:
// each under its heading, separated by a rule.
func RenderResponses(w io.Writer, headings, responses []string) {
	for i, r := range responses {
		if i < len(headings) && headings[i] != "" {
			fmt.Fprintf(w, "\n%s:\n", headings[i])
		}
		fmt.Fprintln(w, strings.TrimSpace(r))
		fmt.Fprintln(w, divider)
	}
}
