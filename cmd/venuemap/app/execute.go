package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/venuemap/internal/cmd/output"
)

// globalFlags holds the persistent flag values until setupCommand applies
// them over the loaded configuration.
type globalFlags struct {
	configFile  string
	verbose     bool
	quiet       bool
	noColor     bool
	format      string
	logLevel    string
	databaseURL string
	targetsFile string
}

// Execute runs the venuemap CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "venuemap",
		Short:   "Venue market tracker",
		Version: a.version,
		Long: `venuemap tracks how a set of venues compare on public ratings.

It asks a map-grounded AI model for each venue's rating and review count,
reconciles the answer into a snapshot, stores the snapshot and reports on
the market over time.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "market", Title: "Market Commands:"})

	addGlobalFlags(rootCmd.PersistentFlags(), flags)

	rootCmd.SetVersionTemplate("venuemap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(pf *pflag.FlagSet, flags *globalFlags) {
	pf.StringVar(&flags.configFile, "config", "", "config file (default is ./.venuemap.yaml or $HOME/.venuemap.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: table, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&flags.databaseURL, "database-url", "", "snapshot store: postgres://..., sqlite://path or memory://")
	pf.StringVar(&flags.targetsFile, "targets", "", "market definition YAML file")
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, flags *globalFlags) error {
	if flags.configFile != "" {
		config, err := LoadConfig(flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor,
		flags.format, flags.logLevel, flags.databaseURL, flags.targetsFile)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	a.config.Format = string(output.DetectFormat(string(format)))

	logger := NewLogger(a.config)
	a.logger = &logger

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config_file", a.config.ConfigFile).
		Str("format", a.config.Format).
		Msg("Command setup complete")
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
