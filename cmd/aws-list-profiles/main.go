package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/younsl/awskit/internal/cli"
	"github.com/younsl/awskit/pkg/aws"
	"github.com/younsl/awskit/pkg/formatter"
	"github.com/younsl/awskit/pkg/profiles"
)

const name = "aws-list-profiles"

func main() {
	app := cli.NewApp(name)
	rootCmd := cli.NewRootCommand(app,
		name,
		"List AWS profiles with their region and account ID",
		`aws-list-profiles reads the shared AWS config and credentials files and
prints every profile with its region, account ID (resolved through STS)
and masked access key.`,
		func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app)
		})
	rootCmd.Args = cobra.NoArgs
	cli.Execute(rootCmd)
}

func run(ctx context.Context, app *cli.App) error {
	list, err := profiles.Discover(app.Settings.AWSConfigFile, app.Settings.AWSCredentialsFile)
	if err != nil {
		return err
	}

	if len(list) > 0 {
		progress := cli.StartProgress("Resolving account IDs for %d profiles", len(list))
		profiles.EnrichAccounts(ctx, list, aws.ProfileAccountResolver{})
		progress.Done("Account IDs resolved")
	}

	formatter.PrintProfilesTable(app.Out, list)
	return nil
}
