package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"github.com/younsl/awskit/internal/cli"
	"github.com/younsl/awskit/internal/config"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/actions"
	"github.com/younsl/awskit/pkg/aws"
	"github.com/younsl/awskit/pkg/formatter"
	"github.com/younsl/awskit/pkg/pricing"
	"github.com/younsl/awskit/pkg/prompt"
)

const (
	name      = "aws-ec2-list"
	cpuWindow = 24 * time.Hour
)

type options struct {
	profile string
	region  string
	cpu     bool
	pricing bool
}

func main() {
	var opts options

	app := cli.NewApp(name)
	rootCmd := cli.NewRootCommand(app,
		name,
		"List EC2 instances for AWS profiles and manage them",
		`aws-ec2-list shows the EC2 instances of one profile, or of every profile
in turn, and then reads actions (start, stop, reboot, terminate) to run
against instance IDs until 'q' is entered. Terminate asks for
confirmation.`,
		func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app, opts)
		})
	rootCmd.Args = cobra.NoArgs

	rootCmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Profile to manage, or 'all' (default: choose from a menu)")
	rootCmd.Flags().StringVarP(&opts.region, "region", "r", "", "Region override (default: the profile's region)")
	rootCmd.Flags().BoolVar(&opts.cpu, "cpu", false, "Show average CPU utilization over the last 24 hours")
	rootCmd.Flags().BoolVar(&opts.pricing, "pricing", false, "Show estimated monthly on-demand cost")

	cli.Execute(rootCmd)
}

func run(ctx context.Context, app *cli.App, opts options) error {
	prompts := app.Prompter()

	selected, all, err := selectProfiles(app, prompts, opts.profile)
	if err != nil {
		if errors.Is(err, prompt.ErrInvalidSelection) {
			fmt.Fprintln(app.Out, "Invalid selection. Exiting...")
			return cli.ErrSilentExit
		}
		return err
	}

	if opts.pricing && !app.Settings.PricingEnabled {
		log.Warnf("--pricing ignored: pricing is disabled by %s", config.KeyPricingEnabled)
	}
	opts.pricing = pricingWanted(opts, app.Settings)

	m := &manager{app: app, prompts: prompts, opts: opts}
	for _, profile := range selected {
		if all {
			fmt.Fprintf(app.Out, "\nManaging instances for profile: %s\n", profile)
		}
		if err := m.manage(ctx, profile); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}

	if m.pricing != nil {
		formatter.PrintPricingAPIStats(app.Out, m.pricing.Stats())
	}
	return nil
}

// pricingWanted reports whether the pricing column is shown. Both the flag
// and pricing.enabled must allow it.
func pricingWanted(opts options, s config.Settings) bool {
	return opts.pricing && s.PricingEnabled
}

// selectProfiles resolves --profile or asks with a one-shot menu
func selectProfiles(app *cli.App, prompts *prompt.Prompter, flag string) ([]string, bool, error) {
	if flag != "" && flag != prompt.AllChoice {
		return []string{flag}, false, nil
	}

	names, err := app.ProfileNames()
	if err != nil {
		return nil, false, err
	}
	if flag == prompt.AllChoice {
		return names, true, nil
	}

	idx, all, err := prompts.SelectOrAll("Available AWS profiles:",
		"\nSelect a profile by number (or enter 'all' to manage all profiles): ", names)
	if err != nil {
		return nil, false, err
	}
	if all {
		return names, true, nil
	}
	return names[idx : idx+1], false, nil
}

type manager struct {
	app     *cli.App
	prompts *prompt.Prompter
	opts    options
	pricing *pricing.Client
}

// manage lists one profile's instances and runs the action loop. Listing
// failures are reported and the profile is skipped.
func (m *manager) manage(ctx context.Context, profile string) error {
	out := m.app.Out

	cfg, err := aws.LoadConfig(ctx, aws.WithProfile(profile), aws.WithRegion(m.opts.region))
	if err != nil {
		fmt.Fprintf(out, "Error fetching instances for profile %s: %s\n", profile, cli.ErrorLine(err))
		fmt.Fprintf(out, "No instances found for profile %s.\n", profile)
		return nil
	}

	ec2Client := aws.NewEC2Client(cfg)
	scanStart := time.Now()
	progress := cli.StartProgress("Listing EC2 instances for %s in %s", profile, cfg.Region)
	instances, err := ec2Client.ListInstances(ctx)
	if err != nil {
		progress.Stop()
		fmt.Fprintf(out, "Error fetching instances for profile %s: %s\n", profile, cli.ErrorLine(err))
	}
	if len(instances) == 0 {
		progress.Stop()
		fmt.Fprintf(out, "No instances found for profile %s.\n", profile)
		return nil
	}

	if m.opts.cpu {
		m.addCPU(ctx, aws.NewCloudWatchClient(cfg), instances)
	}
	if m.opts.pricing {
		m.addPricing(ctx, profile, instances)
	}
	progress.Done("Found %d instances", len(instances))

	fmt.Fprintf(out, "\nInstances for profile: %s\n", profile)
	formatter.PrintInstancesTable(out, instances, formatter.InstanceColumns{CPU: m.opts.cpu, Pricing: m.opts.pricing}, time.Now())
	formatter.PrintScanTime(out, scanStart, time.Since(scanStart))

	return actions.NewDispatcher(ec2Client, m.prompts).Loop(ctx)
}

func (m *manager) addCPU(ctx context.Context, cw *aws.CloudWatchClient, instances []models.InstanceSummary) {
	for i := range instances {
		if instances[i].State != "running" {
			continue
		}
		avg, err := cw.AverageCPU(ctx, instances[i].InstanceID, cpuWindow)
		if err != nil {
			log.WithField("instance", instances[i].InstanceID).Warnf("CPU metrics unavailable: %s", cli.ErrorLine(err))
			continue
		}
		instances[i].AvgCPU = avg
	}
}

func (m *manager) addPricing(ctx context.Context, profile string, instances []models.InstanceSummary) {
	if m.pricing == nil {
		client, err := pricing.New(ctx, m.app.Settings.PricingRegion, awsconfig.WithSharedConfigProfile(profile))
		if err != nil {
			log.WithError(err).Warn("pricing disabled")
			return
		}
		m.pricing = client
	}

	for i := range instances {
		monthly, source := m.pricing.MonthlyEstimate(ctx, instances[i].InstanceType, instances[i].Region)
		instances[i].MonthlyCost = monthly
		instances[i].PricingSource = string(source)
	}
}
