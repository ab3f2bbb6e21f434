package analytics

import (
	"fmt"
	"time"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Series is review volume over time, one line per venue name.
type Series struct {
	Labels     []string    `json:"labels" yaml:"labels"`
	Timestamps []time.Time `json:"timestamps" yaml:"timestamps"`
	Lines      []Line      `json:"lines" yaml:"lines"`
}

// Line holds one venue's review counts, aligned with Series.Labels. Nil
// entries mark snapshots where the venue was absent.
type Line struct {
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Values []*int `json:"values" yaml:"values"`
}

// History builds the trend series from snapshots in chronological order,
// labeling points in UTC.
func History(snapshots []*venues.Snapshot) (*Series, error) {
	return HistoryIn(snapshots, time.UTC)
}

// HistoryIn is History with labels rendered in loc. Labels are "Jan 2",
// switching to "Jan 2 15:04" when two consecutive snapshots share a day.
func HistoryIn(snapshots []*venues.Snapshot, loc *time.Location) (*Series, error) {
	if len(snapshots) < constants.MinHistorySnapshots {
		return nil, errors.NewValidationError("history", len(snapshots),
			fmt.Sprintf("trend analysis requires at least %d snapshots", constants.MinHistorySnapshots))
	}
	if loc == nil {
		loc = time.UTC
	}

	layout := constants.TimeFormatDayLabel
	for i := 1; i < len(snapshots); i++ {
		if sameDay(snapshots[i-1].Timestamp().In(loc), snapshots[i].Timestamp().In(loc)) {
			layout = constants.TimeFormatDayTimeLabel
			break
		}
	}

	s := &Series{
		Labels:     make([]string, len(snapshots)),
		Timestamps: make([]time.Time, len(snapshots)),
	}
	index := make(map[string]int)
	for i, snap := range snapshots {
		s.Labels[i] = snap.Timestamp().In(loc).Format(layout)
		s.Timestamps[i] = snap.Timestamp()
		for _, r := range snap.Venues() {
			li, ok := index[r.Name]
			if !ok {
				li = len(s.Lines)
				index[r.Name] = li
				s.Lines = append(s.Lines, Line{Name: r.Name, Values: make([]*int, len(snapshots))})
			}
			count := r.ReviewCount
			s.Lines[li].Values[i] = &count
		}
	}
	return s, nil
}

// Colorize fills line colors with colorOf.
func (s *Series) Colorize(colorOf func(name string) string) *Series {
	for i := range s.Lines {
		s.Lines[i].Color = colorOf(s.Lines[i].Name)
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
