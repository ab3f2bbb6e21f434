package market

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/internal/sources/replay"
	"github.com/agentstation/venuemap/pkg/reconciler"
	"github.com/agentstation/venuemap/pkg/venues"
)

// NewParseCommand creates the parse command.
func NewParseCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parse <response-file>",
		GroupID: "core",
		Short:   "Reconcile a saved provider response",
		Long: `Parse runs the reconciliation pass over a response saved with
'venuemap sync --record' (or written by hand) and prints the result.

Citations are read from <response-file>` + replay.CitationsSuffix + ` when present.
With --save the snapshot is appended to the store exactly as a live sync
would be.`,
		Example: `  venuemap parse answer.md
  venuemap parse answer.md --citations grounding.yaml --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			citations, _ := cmd.Flags().GetString("citations")
			save, _ := cmd.Flags().GetBool("save")
			sortBy, _ := cmd.Flags().GetString("sort")

			var opts []replay.Option
			if citations != "" {
				opts = append(opts, replay.WithCitationsFile(citations))
			}
			src := replay.New(args[0], opts...)

			tgts, err := app.Targets()
			if err != nil {
				return err
			}

			var snap *venues.Snapshot
			if save {
				client, err := app.ClientWithOptions(venuemap.WithSource(src))
				if err != nil {
					return err
				}
				defer func() { _ = client.Close() }()

				if snap, err = client.Sync(cmd.Context()); err != nil {
					return err
				}
			} else {
				resolver, err := reconciler.New(
					reconciler.WithFallbackAddress(tgts.Address()),
					reconciler.WithLogger(app.Logger()),
				)
				if err != nil {
					return err
				}
				resp, err := src.Query(cmd.Context(), tgts.Venues)
				if err != nil {
					return err
				}
				if snap, err = resolver.Assemble(time.Now(), resp); err != nil {
					return err
				}
			}

			records, err := sortRecords(snap.Venues(), sortBy)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), output.Format(app.OutputFormat()), snap, records, tgts)
		},
	}

	cmd.Flags().String("citations", "", "citations file (default <response-file>"+replay.CitationsSuffix+")")
	cmd.Flags().Bool("save", false, "append the snapshot to the store")
	cmd.Flags().String("sort", SortPresence, "table order: presence, quality")

	return cmd
}
