package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"github.com/younsl/awskit/internal/cli"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/pkg/aws"
	"github.com/younsl/awskit/pkg/formatter"
	"github.com/younsl/awskit/pkg/launcher"
	"github.com/younsl/awskit/pkg/pricing"
	"github.com/younsl/awskit/pkg/prompt"
	"github.com/younsl/awskit/pkg/utils"
)

const name = "aws-ec2-creator"

func main() {
	var profile, region string

	app := cli.NewApp(name)
	rootCmd := cli.NewRootCommand(app,
		name,
		"Create an EC2 instance interactively",
		`aws-ec2-creator asks for a profile and region, creates a security group
in the default VPC, selects or creates a key pair and launches one
instance from the latest Amazon Linux 2 AMI.`,
		func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app, profile, region)
		})
	rootCmd.Args = cobra.NoArgs

	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile to use (default: choose from a menu)")
	rootCmd.Flags().StringVarP(&region, "region", "r", "", "Region to launch in (default: choose from a menu)")

	cli.Execute(rootCmd)
}

func run(ctx context.Context, app *cli.App, profile, region string) error {
	prompts := app.Prompter()

	if profile == "" {
		names, err := app.ProfileNames()
		if err != nil {
			return err
		}
		idx, err := prompts.Select("Available AWS profiles:", "\nSelect a profile by number: ", names)
		if err != nil {
			return err
		}
		profile = names[idx]
	}

	if region == "" {
		var err error
		region, err = selectRegion(ctx, prompts, profile)
		if err != nil {
			return err
		}
	}

	cfg, err := aws.LoadConfig(ctx, aws.WithProfile(profile), aws.WithRegion(region))
	if err != nil {
		return err
	}

	var estimator launcher.Estimator
	if app.Settings.PricingEnabled {
		client, err := pricing.New(ctx, app.Settings.PricingRegion, awsconfig.WithSharedConfigProfile(profile))
		if err != nil {
			log.WithError(err).Warn("pricing disabled")
		} else {
			estimator = client
		}
	}

	s := app.Settings
	wizard := launcher.New(aws.NewEC2Client(cfg), prompts, estimator, launcher.Options{
		Region:              region,
		InstanceType:        s.InstanceType,
		AMIOwner:            s.AMIOwner,
		AMINameFilter:       s.AMINameFilter,
		IngressCIDR:         s.IngressCIDR,
		DefaultIngressPorts: s.DefaultIngressPorts,
		WaitTimeout:         s.WaitTimeout,
		KeyDir:              s.KeyDir,
	})

	result, err := wizard.Run(ctx)
	if err != nil {
		return err
	}

	formatter.PrintLaunchResult(app.Out, result)
	return nil
}

// selectRegion lists the account's enabled regions, falling back to the
// known region list when DescribeRegions is not allowed.
func selectRegion(ctx context.Context, prompts *prompt.Prompter, profile string) (string, error) {
	cfg, err := aws.LoadConfig(ctx, aws.WithProfile(profile))
	if err != nil {
		return "", err
	}

	regions, err := aws.NewEC2Client(cfg).Regions(ctx)
	if err != nil {
		log.Warnf("%s, using built-in region list", cli.ErrorLine(err))
		regions = utils.KnownRegions()
	}

	idx, err := prompts.Select("\nAvailable AWS regions:", "\nSelect a region by number: ", regions)
	if err != nil {
		return "", fmt.Errorf("region selection: %w", err)
	}
	return regions[idx], nil
}
