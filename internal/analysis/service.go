package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jobinsight-engine/internal/llm"
	"jobinsight-engine/internal/prompt"
	"jobinsight-engine/internal/query"
	"jobinsight-engine/internal/store"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrNoJobs          = errors.New("no jobs found")
	ErrNoGenerator     = errors.New("llm is not configured")
)

// maxParallelPrompts bounds concurrent model calls for one analysis.
const maxParallelPrompts = 3

// Service runs the market, company and location flows over the current
// dataset. The dataset can be swapped while requests are in flight; each call
// works on the snapshot it started with.
type Service struct {
	data atomic.Pointer[store.Store]
	gen  llm.Generator
	log  zerolog.Logger
}

func New(data *store.Store, gen llm.Generator, log zerolog.Logger) *Service {
	s := &Service{gen: gen, log: log}
	if data == nil {
		data = store.FromRecords(nil)
	}
	s.data.Store(data)
	return s
}

func (s *Service) Dataset() *store.Store { return s.data.Load() }

// Swap installs a new dataset and returns the previous one.
func (s *Service) Swap(data *store.Store) *store.Store {
	return s.data.Swap(data)
}

func (s *Service) HasGenerator() bool { return s.gen != nil }

type CompanyView struct {
	Company  string             `json:"company"`
	Job      store.JobSummary   `json:"job"`
	Info     store.CompanyInfo  `json:"info"`
	Benefits store.BenefitsInfo `json:"benefits"`
}

type MarketAnalysis struct {
	Report    query.MarketReport `json:"report"`
	Responses []string           `json:"responses"`
}

type CompanyAnalysis struct {
	View             CompanyView `json:"view"`
	JobSummary       string      `json:"job_summary"`
	CompanyAnalysis  string      `json:"company_analysis"`
	BenefitsAnalysis string      `json:"benefits_analysis"`
	CultureInsights  string      `json:"culture_insights"`
}

type LocationAnalysis struct {
	Report   query.LocationReport `json:"report"`
	Response string               `json:"response"`
}

func (s *Service) Market(keyword string) query.MarketReport {
	return query.Market(s.Dataset().Records(), keyword)
}

// Location returns ErrNoJobs when nothing matches, with the report still
// filled in.
func (s *Service) Location(location string) (query.LocationReport, error) {
	r := query.Location(s.Dataset().Records(), location)
	if r.Stats.TotalJobs == 0 {
		return r, fmt.Errorf("%w in %s", ErrNoJobs, location)
	}
	return r, nil
}

// Company looks the company up on a private snapshot so concurrent requests
// never share a selection.
func (s *Service) Company(name string) (CompanyView, error) {
	snap := s.Dataset().Snapshot()
	if !snap.SelectCompany(strings.TrimSpace(name)) {
		return CompanyView{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, name)
	}
	return CompanyView{
		Company:  snap.CompanyName(),
		Job:      snap.JobSummary(),
		Info:     snap.CompanyInfo(),
		Benefits: snap.BenefitsInfo(),
	}, nil
}

func (s *Service) AnalyzeMarket(ctx context.Context, keyword string) (MarketAnalysis, error) {
	if s.gen == nil {
		return MarketAnalysis{}, ErrNoGenerator
	}
	report := s.Market(keyword)
	responses := s.respondAll(ctx, prompt.Market(report))
	s.log.Info().Str("keyword", keyword).Int("jobs", report.Stats.TotalJobs).Msg("market analysis done")
	return MarketAnalysis{Report: report, Responses: responses}, nil
}

func (s *Service) AnalyzeCompany(ctx context.Context, name string) (CompanyAnalysis, error) {
	if s.gen == nil {
		return CompanyAnalysis{}, ErrNoGenerator
	}
	view, err := s.Company(name)
	if err != nil {
		return CompanyAnalysis{}, err
	}

	out := s.respondAll(ctx, []string{
		prompt.Summary(view.Job),
		prompt.CompanyAnalysis(view.Company, view.Info),
		prompt.BenefitsAnalysis(view.Company, view.Benefits),
		prompt.CultureInsights(view.Company, view.Info),
	})
	s.log.Info().Str("company", view.Company).Msg("company analysis done")
	return CompanyAnalysis{
		View:             view,
		JobSummary:       out[0],
		CompanyAnalysis:  out[1],
		BenefitsAnalysis: out[2],
		CultureInsights:  out[3],
	}, nil
}

func (s *Service) AnalyzeLocation(ctx context.Context, location string) (LocationAnalysis, error) {
	if s.gen == nil {
		return LocationAnalysis{}, ErrNoGenerator
	}
	report, err := s.Location(location)
	if err != nil {
		return LocationAnalysis{Report: report}, err
	}
	resp := llm.Respond(ctx, s.gen, prompt.LocationAnalysis(report.Stats, location))
	return LocationAnalysis{Report: report, Response: resp}, nil
}

// respondAll sends prompts concurrently and keeps responses in prompt order.
func (s *Service) respondAll(ctx context.Context, prompts []string) []string {
	out := make([]string, len(prompts))
	var g errgroup.Group
	g.SetLimit(maxParallelPrompts)
	for i, p := range prompts {
		i, p := i, p
		g.Go(func() error {
			out[i] = llm.Respond(ctx, s.gen, p)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
