package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"jobinsight-engine/cmd/jobinsight/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "jobinsight",
		Usage: "job market analytics over collected job postings, with LLM-written insights",
		Commands: []*cli.Command{
			{
				Name:  "collect",
				Usage: "download the configured dataset snapshots into the data file",
				Flags: append(commands.CommonFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "re-download even when the data file exists",
					},
				),
				Action: commands.CollectAction,
			},
			{
				Name:  "market",
				Usage: "statistics, benefits and title trends for a job keyword",
				Flags: commands.ReportFlags(
					&cli.StringFlag{
						Name:     "keyword",
						Usage:    "job keyword, e.g. 'software developer'",
						Required: true,
					},
				),
				Action: commands.MarketAction,
			},
			{
				Name:  "location",
				Usage: "statistics for jobs in a location",
				Flags: commands.ReportFlags(
					&cli.StringFlag{
						Name:     "location",
						Usage:    "location, e.g. 'India'",
						Required: true,
					},
				),
				Action: commands.LocationAction,
			},
			{
				Name:  "company",
				Usage: "ratings, benefits and the current opening for a company",
				Flags: commands.ReportFlags(
					&cli.StringFlag{
						Name:     "name",
						Usage:    "company name (case-insensitive)",
						Required: true,
					},
				),
				Action: commands.CompanyAction,
			},
			{
				Name:   "serve",
				Usage:  "run the local HTTP API",
				Flags:  commands.CommonFlags(),
				Action: commands.ServeAction,
			},
			{
				Name:  "config",
				Usage: "inspect configuration",
				Commands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "print the effective configuration",
						Flags:  commands.CommonFlags(),
						Action: commands.ConfigShowAction,
					},
					{
						Name:   "validate",
						Usage:  "check the user configuration",
						Flags:  commands.CommonFlags(),
						Action: commands.ConfigValidateAction,
					},
				},
			},
			{
				Name:  "secrets",
				Usage: "manage API credentials in the OS keychain",
				Commands: []*cli.Command{
					{
						Name:  "set",
						Usage: "store a secret",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "name",
								Usage:    "dataset or google",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "value",
								Usage:    "secret value",
								Required: true,
							},
						},
						Action: commands.SecretsSetAction,
					},
					{
						Name:  "delete",
						Usage: "remove a secret",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "name",
								Usage:    "dataset or google",
								Required: true,
							},
						},
						Action: commands.SecretsDeleteAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
