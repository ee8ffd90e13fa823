// Package cli holds the cobra bootstrap shared by every awskit binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/awskit/internal/config"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/version"
	awsx "github.com/younsl/awskit/pkg/aws"
	"github.com/younsl/awskit/pkg/profiles"
	"github.com/younsl/awskit/pkg/prompt"
)

// App carries the resolved settings and standard streams into a command.
type App struct {
	Name     string
	Viper    *viper.Viper
	Settings config.Settings
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
}

// NewApp returns an App wired to the process streams.
func NewApp(name string) *App {
	return &App{
		Name:  name,
		Viper: viper.New(),
		In:    os.Stdin,
		Out:   os.Stdout,
		Err:   os.Stderr,
	}
}

// NewRootCommand builds a root command with --config and --version. run is
// invoked after settings are loaded.
func NewRootCommand(app *App, use, short, long string, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	var (
		cfgFile     string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.InitLogger()
			if err := config.Load(app.Viper, cfgFile); err != nil {
				return err
			}
			app.Settings = config.FromViper(app.Viper)
			log.Debugf("settings loaded: config=%s credentials=%s",
				app.Settings.AWSConfigFile, app.Settings.AWSCredentialsFile)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(app.Out, version.Get().String(app.Name))
				return nil
			}
			return run(cmd, args)
		},
	}
	cmd.SetIn(app.In)
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.awskit.yaml)")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	return cmd
}

// ErrSilentExit makes Execute exit non-zero without printing, for commands
// that already told the user what went wrong.
var ErrSilentExit = errors.New("exit")

// Prompter returns a Prompter on the app's streams.
func (app *App) Prompter() *prompt.Prompter {
	return prompt.New(app.In, app.Out)
}

// ProfileNames lists the profiles found in the configured AWS files.
func (app *App) ProfileNames() ([]string, error) {
	return profiles.Names(app.Settings.AWSConfigFile, app.Settings.AWSCredentialsFile)
}

// ErrorLine renders err for the terminal, prefixed with the AWS error code
// when there is one.
func ErrorLine(err error) string {
	if code := awsx.ErrorCode(err); code != "" {
		return fmt.Sprintf("[%s] %v", code, err)
	}
	return err.Error()
}

// Execute runs cmd until it returns or the process is interrupted, and
// exits non-zero on error.
func Execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, ErrSilentExit) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", ErrorLine(err))
		}
		os.Exit(1)
	}
}
