package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/younsl/awskit/internal/cli"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/aws"
	"github.com/younsl/awskit/pkg/cost"
	"github.com/younsl/awskit/pkg/formatter"
)

const name = "aws-billing-info"

func main() {
	app := cli.NewApp(name)
	rootCmd := cli.NewRootCommand(app,
		name+" <profile1> [profile2] [profile3] ...",
		"Show month-to-date cost and forecast for AWS profiles",
		`aws-billing-info queries Cost Explorer for each profile given on the
command line and prints the month-to-date cost, the forecast for the rest
of the month and the estimated amount due in one table.

Estimated Amount Due is the month-to-date cost plus the forecast for the
rest of the month. It is not the forecast alone.`,
		func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no profile given\nUsage: %s <profile1> [profile2] [profile3] ...", name)
			}
			return run(cmd.Context(), app, args)
		})
	cli.Execute(rootCmd)
}

func run(ctx context.Context, app *cli.App, profiles []string) error {
	now := time.Now()
	rows := make([]models.BillingInfo, 0, len(profiles))

	for _, profile := range profiles {
		progress := cli.StartProgress("Retrieving billing information for %s", profile)
		rows = append(rows, billing(ctx, profile, now))
		progress.Done("Billing information for %s", profile)
	}

	formatter.PrintBillingTable(app.Out, rows)
	return nil
}

func billing(ctx context.Context, profile string, now time.Time) models.BillingInfo {
	cfg, err := aws.LoadConfig(ctx, aws.WithProfile(profile))
	if err != nil {
		return models.BillingInfo{Profile: profile, Err: err}
	}

	info := cost.Billing(ctx, aws.NewCostClient(cfg, profile), profile, now)
	if info.Err != nil {
		log.WithField("profile", profile).Errorf("billing lookup failed: %s", cli.ErrorLine(info.Err))
	}
	return info
}
