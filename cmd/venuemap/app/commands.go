package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/venuemap/cmd/market"
	"github.com/agentstation/venuemap/cmd/venuemap/cmd/report"
	"github.com/agentstation/venuemap/cmd/venuemap/cmd/serve"
	"github.com/agentstation/venuemap/cmd/venuemap/cmd/targets"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(market.NewSyncCommand(a))
	rootCmd.AddCommand(market.NewParseCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Market commands
	rootCmd.AddCommand(market.NewLatestCommand(a))
	rootCmd.AddCommand(market.NewHistoryCommand(a))
	rootCmd.AddCommand(report.NewCommand(a))
	rootCmd.AddCommand(targets.NewCommand(a))
	rootCmd.AddCommand(targets.NewColorCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("venuemap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
