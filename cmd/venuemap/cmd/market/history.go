package market

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/emoji"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/internal/cmd/table"
	"github.com/agentstation/venuemap/pkg/constants"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		GroupID: "market",
		Short:   "List stored snapshots, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 0 {
				return fmt.Errorf("invalid limit %d: must not be negative", limit)
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			snaps, err := client.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			format := output.Format(app.OutputFormat())
			if len(snaps) == 0 && (format == output.FormatTable || format == "") {
				_, _ = fmt.Fprintf(w, "%s No snapshots stored yet. Run 'venuemap sync' first.\n", emoji.Info)
				return nil
			}
			return output.Print(w, format, snaps, func() table.Data {
				return table.SnapshotsToTableData(snaps, time.Now())
			})
		},
	}

	cmd.Flags().IntP("limit", "n", constants.DefaultHistoryLimit, "maximum number of snapshots (0 for the store default)")

	return cmd
}
