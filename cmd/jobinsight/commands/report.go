package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"jobinsight-engine/internal/analysis"
	"jobinsight-engine/internal/llm"
	"jobinsight-engine/internal/logging"
)

// ReportFlags are shared by market, location and company.
func ReportFlags(extra ...cli.Flag) []cli.Flag {
	flags := append(CommonFlags(), extra...)
	return append(flags,
		&cli.BoolFlag{
			Name:  "analyze",
			Usage: "send the report to the LLM and print its analysis",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print JSON instead of tables",
		},
	)
}

func newService(ctx context.Context, app *AppContext, withLLM bool) (*analysis.Service, error) {
	var gen llm.Generator
	if withLLM {
		g, err := app.Generator(ctx)
		if err != nil {
			return nil, fmt.Errorf("llm setup failed: %w", err)
		}
		gen = g
	}
	return analysis.New(app.LoadDataset(ctx), gen, logging.Component(app.Log, "analysis")), nil
}

// MarketAction prints keyword statistics, benefits and titles.
func MarketAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	keyword := cmd.String("keyword")
	svc, err := newService(ctx, app, cmd.Bool("analyze"))
	if err != nil {
		return err
	}

	if !cmd.Bool("analyze") {
		r := svc.Market(keyword)
		if cmd.Bool("json") {
			return writeJSON(os.Stdout, r)
		}
		return RenderMarket(os.Stdout, r)
	}

	fmt.Fprintln(os.Stderr, "Analyzing job market data...")
	out, err := svc.AnalyzeMarket(ctx, keyword)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(os.Stdout, out)
	}
	if err := RenderMarket(os.Stdout, out.Report); err != nil {
		return err
	}
	RenderResponses(os.Stdout, []string{"Market Statistics", "Benefits Trends", "Title Trends"}, out.Responses)
	return nil
}

func LocationAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	location := cmd.String("location")
	svc, err := newService(ctx, app, cmd.Bool("analyze"))
	if err != nil {
		return err
	}

	if !cmd.Bool("analyze") {
		r, err := svc.Location(location)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return writeJSON(os.Stdout, r)
		}
		return RenderLocation(os.Stdout, r)
	}

	out, err := svc.AnalyzeLocation(ctx, location)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(os.Stdout, out)
	}
	if err := RenderLocation(os.Stdout, out.Report); err != nil {
		return err
	}
	RenderResponses(os.Stdout, []string{"Location Analysis"}, []string{out.Response})
	return nil
}

func CompanyAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(cmd.String("name"))
	svc, err := newService(ctx, app, cmd.Bool("analyze"))
	if err != nil {
		return err
	}

	if !cmd.Bool("analyze") {
		view, err := svc.Company(name)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return writeJSON(os.Stdout, view)
		}
		return RenderCompany(os.Stdout, view)
	}

	out, err := svc.AnalyzeCompany(ctx, name)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(os.Stdout, out)
	}
	fmt.Fprintf(os.Stdout, "Found data for %s!\n", out.View.Company)
	RenderResponses(os.Stdout,
		[]string{"Job Summary", "Company Analysis", "Benefits Analysis", "Culture Insights"},
		[]string{out.JobSummary, out.CompanyAnalysis, out.BenefitsAnalysis, out.CultureInsights})
	return nil
}
