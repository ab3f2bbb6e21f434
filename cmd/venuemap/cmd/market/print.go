// Package market provides the commands that create and read snapshots:
// sync, parse, latest and history.
package market

import (
	"fmt"
	"io"
	"time"

	"github.com/agentstation/venuemap/internal/cmd/emoji"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/internal/cmd/table"
	"github.com/agentstation/venuemap/pkg/analytics"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Sort orders for venue listings.
const (
	SortPresence = "presence"
	SortQuality  = "quality"
)

// sortRecords orders records for display.
func sortRecords(records []venues.Record, by string) ([]venues.Record, error) {
	switch by {
	case SortPresence, "":
		return analytics.SortByPresence(records), nil
	case SortQuality:
		return analytics.SortByQuality(records), nil
	default:
		return nil, fmt.Errorf("invalid sort %q: must be one of: %s, %s", by, SortPresence, SortQuality)
	}
}

// printSnapshot writes snap in format. Table output lists records as given
// followed by a summary; JSON and YAML carry the whole snapshot.
func printSnapshot(w io.Writer, format output.Format, snap *venues.Snapshot, records []venues.Record, tgts *targets.Config) error {
	err := output.Print(w, format, snap, func() table.Data {
		return table.VenuesToTableData(records, tgts.Palette, tgts.Subject)
	})
	if err != nil || (format != output.FormatTable && format != "") {
		return err
	}

	_, _ = fmt.Fprintf(w, "\n%s Snapshot %s taken %s: %d of %d venues shown\n",
		emoji.Info, orNone(snap.ID()), snap.Timestamp().UTC().Format(time.RFC3339), len(records), snap.Len())

	if snap.Len() > 0 {
		if _, ok := tgts.SubjectOf(snap.Venues()); !ok {
			_, _ = fmt.Fprintf(w, "%s Subject venue %q not present in snapshot\n", emoji.Warning, tgts.Subject)
		}
	}
	return nil
}

func orNone(id string) string {
	if id == "" {
		return "(unsaved)"
	}
	return id
}
