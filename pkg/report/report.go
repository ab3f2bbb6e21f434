// Package report renders a market snapshot as a Markdown briefing.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	md "github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/venuemap/pkg/analytics"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/palette"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Input is everything a report needs.
type Input struct {
	Title         string
	Location      string
	SubjectMarker string
	Snapshot      *venues.Snapshot
	// History is optional; with two or more snapshots a trend section is added.
	History []*venues.Snapshot
	Palette *palette.Palette
	// Now stamps the report. Zero means time.Now.
	Now time.Time
}

// Write renders in to w.
func Write(w io.Writer, in Input) error {
	if in.Snapshot == nil {
		return errors.NewNotFoundError("snapshot", "")
	}
	if in.Palette == nil {
		in.Palette = palette.Default()
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	title := in.Title
	if title == "" {
		title = "Market Report"
	}
	if in.Location != "" {
		title = title + ": " + in.Location
	}

	records := in.Snapshot.Venues()
	bench := analytics.NewBenchmark(records, in.SubjectMarker)
	share := analytics.Share(records)

	doc := md.NewMarkdown(w)
	doc.H1(cases.Title(language.English).String(title))
	doc.PlainTextf("Generated %s from snapshot %s taken %s.",
		in.Now.UTC().Format(constants.TimeFormatHuman),
		md.Code(in.Snapshot.ID()),
		in.Snapshot.Timestamp().Format(constants.TimeFormatHuman))

	doc.H2("Benchmark")
	doc.BulletList(benchmarkLines(bench, len(records))...)

	doc.H2("Leaderboard")
	doc.Table(md.TableSet{
		Header: []string{"Rank", "Venue", "Rating", "Reviews", "Share", "Color"},
		Rows:   leaderboardRows(share, records, in.Palette),
	})

	if len(in.History) >= constants.MinHistorySnapshots {
		series, err := analytics.History(in.History)
		if err != nil {
			return err
		}
		doc.H2("Review Volume Trend")
		doc.Table(md.TableSet{
			Header: append([]string{"Venue"}, series.Labels...),
			Rows:   trendRows(series),
		})
	}

	return doc.Build()
}

func benchmarkLines(b analytics.Benchmark, n int) []string {
	if n == 0 {
		return []string{"No venues in snapshot"}
	}
	lines := []string{
		fmt.Sprintf("Venues tracked: %d", n),
		fmt.Sprintf("Market average rating: %.2f", b.AverageRating),
	}
	if b.Leader != nil {
		lines = append(lines, fmt.Sprintf("Market leader: %s (%.1f, %d reviews)",
			md.Bold(b.Leader.Name), b.Leader.Rating, b.Leader.ReviewCount))
	}
	if b.Subject == nil {
		return append(lines, "Subject venue not present in snapshot")
	}
	return append(lines,
		fmt.Sprintf("Subject: %s (%.1f, %d reviews)", md.Bold(b.Subject.Name), b.Subject.Rating, b.Subject.ReviewCount),
		fmt.Sprintf("Quality rank: #%d of %d", b.QualityRank, n),
		fmt.Sprintf("Presence rank: #%d of %d", b.PresenceRank, n),
		fmt.Sprintf("Versus market average: %s", signed(b.VsAverage)),
		fmt.Sprintf("Versus leader: %s", signed(b.VsLeader)),
	)
}

func leaderboardRows(share []analytics.ShareEntry, records []venues.Record, p *palette.Palette) [][]string {
	byID := make(map[string]venues.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	rows := make([][]string, 0, len(share))
	for _, s := range share {
		r := byID[s.ID]
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			md.Link(r.Name, r.MapLink),
			strconv.FormatFloat(r.Rating, 'f', 1, 64),
			strconv.Itoa(r.ReviewCount),
			fmt.Sprintf("%.1f%%", s.Percent),
			p.ColorOf(r.Name),
		})
	}
	return rows
}

func trendRows(s *analytics.Series) [][]string {
	rows := make([][]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		row := make([]string, 0, len(line.Values)+1)
		row = append(row, line.Name)
		for _, v := range line.Values {
			if v == nil {
				row = append(row, "-")
				continue
			}
			row = append(row, strconv.Itoa(*v))
		}
		rows = append(rows, row)
	}
	return rows
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
