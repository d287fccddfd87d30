package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinsight-engine/internal/domain"
	"jobinsight-engine/internal/prompt"
	"jobinsight-engine/internal/store"
)

type echoGen struct {
	mu      sync.Mutex
	prompts []string
	fail    string
}

func (g *echoGen) Generate(_ context.Context, p string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, p)
	g.mu.Unlock()
	if g.fail != "" && strings.Contains(p, g.fail) {
		return "", errors.New("model down")
	}
	first, _, _ := strings.Cut(p, "\n")
	return "re: " + first, nil
}

func dataset() *store.Store {
	return store.FromRecords([]domain.Record{
		{
			domain.FieldJobTitle: "Software Engineer", domain.FieldCompanyName: "Acme",
			domain.FieldJobLocation: "Austin, TX", domain.FieldPayMedian: 100000.0,
			domain.FieldCompanyRating: 4.2, domain.FieldBenefitsRating: 3.9,
			domain.FieldBenefitReviews: []any{"Good 401k"},
		},
		{
			domain.FieldJobTitle: "Data Engineer", domain.FieldCompanyName: "Globex",
			domain.FieldJobLocation: "Dallas, TX", domain.FieldPayMedian: 120000.0,
			domain.FieldDiscoveryInput: map[string]any{domain.FieldDiscoveryLoc: "Texas"},
		},
		{domain.FieldJobTitle: "Nurse", domain.FieldCompanyName: "Initech", domain.FieldJobLocation: "Austin, TX"},
	})
}

func TestMarket(t *testing.T) {
	svc := New(dataset(), nil, zerolog.Nop())
	r := svc.Market("engineer")
	assert.Equal(t, 2, r.Stats.TotalJobs)
	assert.Equal(t, 110000.0, r.Stats.AvgSalary)
	assert.Equal(t, "engineer", r.Keyword)

	_, err := svc.AnalyzeMarket(context.Background(), "engineer")
	assert.ErrorIs(t, err, ErrNoGenerator)
}

func TestAnalyzeMarket_OrderAndDegrade(t *testing.T) {
	gen := &echoGen{fail: "most common benefits"}
	svc := New(dataset(), gen, zerolog.Nop())

	got, err := svc.AnalyzeMarket(context.Background(), "engineer")
	require.NoError(t, err)
	require.Len(t, got.Responses, 3)
	assert.Contains(t, got.Responses[0], "job market statistics")
	assert.Equal(t, "Error generating response: model down", got.Responses[1])
	assert.Contains(t, got.Responses[2], "trending job titles")
	assert.Len(t, gen.prompts, 3)
}

func TestCompany(t *testing.T) {
	svc := New(dataset(), &echoGen{}, zerolog.Nop())

	view, err := svc.Company("  acme ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", view.Company)
	assert.Equal(t, "Software Engineer", view.Job.JobTitle)
	assert.Equal(t, 4.2, view.Info.Rating)
	assert.Equal(t, []string{"Good 401k"}, view.Benefits.Reviews)

	_, err = svc.Company("Umbrella")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.Equal(t, "company not found: Umbrella", err.Error())
}

func TestAnalyzeCompany(t *testing.T) {
	gen := &echoGen{}
	svc := New(dataset(), gen, zerolog.Nop())

	got, err := svc.AnalyzeCompany(context.Background(), "globex")
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.View.Company)
	assert.NotEmpty(t, got.JobSummary)
	assert.Equal(t, "re: Analyze Globex based on the following metrics:", got.CompanyAnalysis)
	assert.Contains(t, got.BenefitsAnalysis, "Globex")
	assert.Equal(t, "re: Provide insights about the company culture at Globex based on:", got.CultureInsights)
	assert.Len(t, gen.prompts, 4)

	_, err = svc.AnalyzeCompany(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestAnalyzeCompany_PaddedName(t *testing.T) {
	gen := &echoGen{}
	svc := New(dataset(), gen, zerolog.Nop())

	got, err := svc.AnalyzeCompany(context.Background(), " acme ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.View.Company)
	assert.Equal(t, "re: "+strings.SplitN(prompt.SystemPrompt, "\n", 2)[0], got.JobSummary)
	for _, p := range gen.prompts {
		assert.NotContains(t, p, "No data found for company")
	}
	assert.Contains(t, strings.Join(gen.prompts, "\n"), "Summarize the job posting for Software Engineer at Acme.")
}

func TestLocation(t *testing.T) {
	svc := New(dataset(), &echoGen{}, zerolog.Nop())

	r, err := svc.Location("texas")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Stats.TotalJobs, "matched through discovery_input.location")

	r, err = svc.Location("austin")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Stats.TotalJobs)

	r, err = svc.Location("Paris")
	assert.ErrorIs(t, err, ErrNoJobs)
	assert.Equal(t, "no jobs found in Paris", err.Error())
	assert.Zero(t, r.Stats.TotalJobs)

	got, err := svc.AnalyzeLocation(context.Background(), "Dallas")
	require.NoError(t, err)
	assert.Equal(t, "re: Analyze job opportunities in Dallas:", got.Response)
}

func TestSwap(t *testing.T) {
	svc := New(nil, nil, zerolog.Nop())
	assert.Zero(t, svc.Dataset().Len())

	old := svc.Swap(dataset())
	assert.Zero(t, old.Len())
	assert.Equal(t, 3, svc.Dataset().Len())
}
