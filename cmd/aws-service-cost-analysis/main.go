package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/younsl/awskit/internal/cli"
	"github.com/younsl/awskit/internal/config"
	"github.com/younsl/awskit/pkg/aws"
	"github.com/younsl/awskit/pkg/cost"
	"github.com/younsl/awskit/pkg/formatter"
)

const name = "aws-service-cost-analysis"

func main() {
	app := cli.NewApp(name)
	rootCmd := cli.NewRootCommand(app,
		name+" <profile>",
		"Analyze AWS service costs for a profile",
		`aws-service-cost-analysis breaks down the unblended cost of the last N
days by service and prints insights: previous month, month to date,
forecast for this month, year to date and, for windows of 60 days or more,
the trend against the preceding window.`,
		func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no profile given\nUsage: %s <profile> [--days N]", name)
			}
			return run(cmd.Context(), app, args[0])
		})
	rootCmd.Args = cobra.MaximumNArgs(1)

	rootCmd.Flags().Int("days", 30, "Number of past days to analyze")
	if err := app.Viper.BindPFlag(config.KeyCostDays, rootCmd.Flags().Lookup("days")); err != nil {
		panic(err)
	}

	cli.Execute(rootCmd)
}

func run(ctx context.Context, app *cli.App, profile string) error {
	days := app.Settings.CostDays
	if days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}

	cfg, err := aws.LoadConfig(ctx, aws.WithProfile(profile))
	if err != nil {
		return err
	}

	now := time.Now()
	start, end := cost.AnalysisWindow(now, days)
	fmt.Fprintf(app.Out, "Analyzing costs for profile '%s' from %s to %s\n",
		profile, cost.FormatDate(start), cost.FormatDate(end))

	progress := cli.StartProgress("Querying Cost Explorer")
	report, err := cost.Analyze(ctx, aws.NewCostClient(cfg, profile), profile, now, days, app.Settings.CostTrendMinDays)
	if err != nil {
		progress.Stop()
		return err
	}
	progress.Done("Cost analysis for %s", profile)

	formatter.PrintCostBreakdown(app.Out, report.Breakdown)
	formatter.PrintCostInsights(app.Out, report)
	return nil
}
