package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/insight-deck/pkg/runtime/terminal/commands"
	"github.com/de-tools/insight-deck/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	settings   *commands.Settings
	reporter   *export.Reporter
	narrative  *export.NarrativeReporter
	publishers commands.PublisherFactory
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output     io.Writer
	Publishers commands.PublisherFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		settings:   &commands.Settings{},
		reporter:   export.NewReporter(opts.Output),
		narrative:  export.NewNarrativeReporter(opts.Output),
		publishers: opts.Publishers,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args for the next Execute.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "insightdeck",
		Short:         "Turn a usage table into a two-page executive report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.settings.ConfigPath, "config", "c", "", "Path to an optional YAML config file")
	cmd.PersistentFlags().BoolVarP(&cli.settings.Verbose, "verbose", "v", false, "Log pipeline stages at debug level")

	cmd.AddCommand(commands.NewGenerateCmd(cli.settings, cli.reporter, cli.publishers))
	cmd.AddCommand(commands.NewValidateCmd(cli.settings, cli.reporter, cli.narrative))

	return cmd
}
