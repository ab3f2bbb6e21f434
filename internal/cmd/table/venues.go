// Package table builds CLI tables for venues, snapshots and targets.
package table

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/agentstation/venuemap/pkg/analytics"
	"github.com/agentstation/venuemap/pkg/palette"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data is a rendered table: headers, rows and optional alignment.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// SubjectMark prefixes the subject venue's name.
const SubjectMark = "★ "

// VenuesToTableData lists records in the given order. The record matching
// subjectMarker is starred.
func VenuesToTableData(records []venues.Record, p *palette.Palette, subjectMarker string) Data {
	if p == nil {
		p = palette.Default()
	}
	subject, hasSubject := targets.FindSubject(records, subjectMarker)

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		name := r.Name
		if hasSubject && r.ID == subject.ID {
			name = SubjectMark + name
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			FormatRating(r.Rating),
			FormatNumber(r.ReviewCount),
			orDash(r.Address),
			orDash(r.ExternalPlaceID),
			p.ColorOf(r.Name),
		})
	}

	return Data{
		Headers:         []string{"#", "Venue", "Rating", "Reviews", "Address", "Place ID", "Color"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

// SnapshotsToTableData lists snapshots with their size and total review
// volume.
func SnapshotsToTableData(snapshots []*venues.Snapshot, now time.Time) Data {
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		total := 0
		for _, r := range s.Venues() {
			total += r.ReviewCount
		}
		rows = append(rows, []string{
			orDash(s.ID()),
			s.Timestamp().UTC().Format(time.RFC3339),
			humanize.RelTime(s.Timestamp(), now, "ago", "from now"),
			strconv.Itoa(s.Len()),
			FormatNumber(total),
		})
	}

	return Data{
		Headers:         []string{"Snapshot", "Timestamp", "Age", "Venues", "Reviews"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight},
	}
}

// ShareToTableData lists review-volume share entries.
func ShareToTableData(share []analytics.ShareEntry) Data {
	rows := make([][]string, 0, len(share))
	for _, s := range share {
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			s.Name,
			FormatNumber(s.ReviewCount),
			strconv.FormatFloat(s.Percent, 'f', 1, 64) + "%",
		})
	}
	return Data{
		Headers:         []string{"Rank", "Venue", "Reviews", "Share"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight, AlignRight},
	}
}

// TargetsToTableData lists the configured target venues.
func TargetsToTableData(cfg *targets.Config) Data {
	rows := make([][]string, 0, len(cfg.Venues))
	for _, t := range cfg.Venues {
		subject := ""
		if targets.IsSubject(t.Name, cfg.Subject) {
			subject = "yes"
		}
		rows = append(rows, []string{
			t.Name,
			orDash(t.ExternalPlaceID),
			cfg.ColorOf(t.Name),
			subject,
		})
	}
	return Data{
		Headers: []string{"Venue", "Place ID", "Color", "Subject"},
		Rows:    rows,
	}
}

// ColorsToTableData lists the color assigned to each name.
func ColorsToTableData(names []string, p *palette.Palette) Data {
	if p == nil {
		p = palette.Default()
	}
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n, p.ColorOf(n)})
	}
	return Data{
		Headers: []string{"Name", "Color"},
		Rows:    rows,
	}
}

// FormatRating formats a rating with one decimal, or "-" when unrated.
func FormatRating(r float64) string {
	if r == 0 {
		return "-"
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// FormatNumber formats counts with comma separators.
func FormatNumber(n int) string {
	return humanize.Comma(int64(n))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
