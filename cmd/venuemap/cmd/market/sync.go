package market

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/emoji"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/internal/sources/replay"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Query the model provider and store a market snapshot",
		Long: `Sync asks the configured model provider for the current rating and
review count of every target venue, reconciles the answer and stores the
resulting snapshot.

A response that yields no venues is reported as an error and nothing is
stored.`,
		Example: `  # Sync every configured venue
  venuemap sync

  # Sync two venues and keep the raw answer for later replay
  venuemap sync --venue "Casino Otium" --venue "Casino Peace" --record answer.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, app)
		},
	}

	cmd.Flags().StringArray("venue", nil, "only sync this configured venue (repeatable)")
	cmd.Flags().String("record", "", "save the raw provider response to this file")
	cmd.Flags().String("sort", SortPresence, "table order: presence, quality")

	return cmd
}

func runSync(cmd *cobra.Command, app application.Application) error {
	names, _ := cmd.Flags().GetStringArray("venue")
	record, _ := cmd.Flags().GetString("record")
	sortBy, _ := cmd.Flags().GetString("sort")

	tgts, err := app.Targets()
	if err != nil {
		return err
	}
	selected, err := selectTargets(tgts, names)
	if err != nil {
		return err
	}

	var client venuemap.Client
	if record != "" {
		src, err := app.Source()
		if err != nil {
			return err
		}
		client, err = app.ClientWithOptions(venuemap.WithSource(replay.Record(src, record)))
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
	} else {
		client, err = app.Client()
		if err != nil {
			return err
		}
	}

	var opts []venuemap.SyncOption
	if len(selected) > 0 {
		opts = append(opts, venuemap.WithSyncTargets(selected))
	}

	snap, err := client.Sync(cmd.Context(), opts...)
	if err != nil {
		if errors.IsNoData(err) {
			return fmt.Errorf("%s %w\n  nothing was stored; rerun with -v to see the parse statistics", emoji.Error, err)
		}
		return err
	}

	records, err := sortRecords(snap.Venues(), sortBy)
	if err != nil {
		return err
	}
	if record != "" {
		app.Logger().Info().Str("file", record).Msg("Saved provider response")
	}
	return printSnapshot(cmd.OutOrStdout(), output.Format(app.OutputFormat()), snap, records, tgts)
}

// selectTargets picks the configured targets named in names. Names match
// case-insensitively; an unknown name is an error.
func selectTargets(cfg *targets.Config, names []string) (venues.Targets, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make(venues.Targets, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(cfg.Venues, func(t venues.Target) bool {
			return strings.EqualFold(t.Name, strings.TrimSpace(name))
		})
		if i < 0 {
			return nil, errors.NewNotFoundError("target venue", name)
		}
		out = append(out, cfg.Venues[i])
	}
	return out, nil
}
