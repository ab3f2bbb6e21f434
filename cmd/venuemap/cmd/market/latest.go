package market

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/pkg/analytics"
)

// NewLatestCommand creates the latest command.
func NewLatestCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "latest",
		Aliases: []string{"ls"},
		GroupID: "market",
		Short:   "Show the newest stored snapshot",
		Example: `  venuemap latest
  venuemap latest --search otium
  venuemap latest --sort quality -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			sortBy, _ := cmd.Flags().GetString("sort")

			client, err := app.Client()
			if err != nil {
				return err
			}
			tgts, err := app.Targets()
			if err != nil {
				return err
			}

			snap, err := client.Latest(cmd.Context())
			if err != nil {
				return err
			}

			records, err := sortRecords(analytics.Filter(snap.Venues(), search), sortBy)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), output.Format(app.OutputFormat()), snap, records, tgts)
		},
	}

	cmd.Flags().StringP("search", "s", "", "only show venues whose name contains this text")
	cmd.Flags().String("sort", SortPresence, "sort order: presence, quality")

	return cmd
}
