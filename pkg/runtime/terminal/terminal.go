package terminal

import (
	"context"
	"io"
	"os"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/render"
	"github.com/mediai/report-dashboard/pkg/runtime/terminal/commands"
	"github.com/mediai/report-dashboard/pkg/runtime/terminal/reporter"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logger  zerolog.Logger
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output         io.Writer
	Logger         *zerolog.Logger
	Exporter       *export.Exporter
	NewClient      commands.ClientFactory
	NewDestination commands.DestinationFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts.Logger = &logger
	}
	if opts.Exporter == nil {
		opts.Exporter = export.NewExporter(render.DefaultLayout())
	}
	if opts.NewClient == nil {
		opts.NewClient = client.NewReportsClient
	}
	if opts.NewDestination == nil {
		opts.NewDestination = export.NewDestination
	}

	cli := &CLI{
		env: &commands.Env{
			Output:         opts.Output,
			Reporter:       reporter.NewReporter(opts.Output),
			Exporter:       opts.Exporter,
			NewClient:      opts.NewClient,
			NewDestination: opts.NewDestination,
		},
		logger: *opts.Logger,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mediai",
		Short:         "Lab report viewer and PDF exporter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.env.ConfigPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&cli.env.Profile, "profile", "", "Profile name in the profiles file")
	cmd.PersistentFlags().StringVar(&cli.env.ProfilesPath, "profiles-file", "", "Path to the profiles file (default is $HOME/.mediaicfg)")

	cmd.AddCommand(commands.NewShowCmd(cli.env))
	cmd.AddCommand(commands.NewExportCmd(cli.env))
	cmd.AddCommand(commands.NewUploadCmd(cli.env))
	cmd.AddCommand(commands.NewRenderCmd(cli.env))
	cmd.AddCommand(commands.NewLayoutCmd(cli.env))

	return cmd
}
