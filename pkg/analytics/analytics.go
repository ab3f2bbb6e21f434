// Package analytics derives the comparative market views shown on the
// dashboard: rankings against the subject venue, review-volume share, the
// top venues by volume, the rating/volume scatter and trend series.
//
// Every function is pure and leaves its input slice untouched.
package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/palette"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

// SortByQuality returns records ordered by rating, then review count, both
// descending.
func SortByQuality(records []venues.Record) []venues.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b venues.Record) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(b.ReviewCount, a.ReviewCount)
	})
	return out
}

// SortByPresence returns records ordered by review count descending.
func SortByPresence(records []venues.Record) []venues.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b venues.Record) int {
		return cmp.Compare(b.ReviewCount, a.ReviewCount)
	})
	return out
}

// Filter keeps records whose name contains term, case-insensitively.
// The term is not trimmed; whitespace is part of the match.
func Filter(records []venues.Record, term string) []venues.Record {
	term = strings.ToLower(term)
	if term == "" {
		return slices.Clone(records)
	}
	var out []venues.Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), term) {
			out = append(out, r)
		}
	}
	return out
}

// Benchmark compares the subject venue with the rest of the market.
type Benchmark struct {
	Subject       *venues.Record `json:"subject,omitempty" yaml:"subject,omitempty"`
	Leader        *venues.Record `json:"leader,omitempty" yaml:"leader,omitempty"`
	QualityRank   int            `json:"qualityRank" yaml:"quality_rank"`
	PresenceRank  int            `json:"presenceRank" yaml:"presence_rank"`
	Competitors   int            `json:"competitors" yaml:"competitors"`
	AverageRating float64        `json:"averageRating" yaml:"average_rating"`
	VsAverage     float64        `json:"vsAverage" yaml:"vs_average"`
	VsLeader      float64        `json:"vsLeader" yaml:"vs_leader"`
}

// NewBenchmark ranks the subject, the first record whose lowercased name
// contains subjectMarker. Ranks and deltas are zero when there is no subject.
func NewBenchmark(records []venues.Record, subjectMarker string) Benchmark {
	var b Benchmark
	if len(records) == 0 {
		return b
	}
	b.Competitors = len(records) - 1

	var sum float64
	for _, r := range records {
		sum += r.Rating
	}
	b.AverageRating = sum / float64(len(records))

	quality := SortByQuality(records)
	leader := quality[0]
	b.Leader = &leader

	subject, ok := targets.FindSubject(records, subjectMarker)
	if !ok {
		return b
	}
	b.Subject = &subject
	b.QualityRank = rankOf(quality, subject.ID)
	b.PresenceRank = rankOf(SortByPresence(records), subject.ID)
	b.VsAverage = subject.Rating - b.AverageRating
	b.VsLeader = subject.Rating - leader.Rating
	return b
}

func rankOf(sorted []venues.Record, id string) int {
	return slices.IndexFunc(sorted, func(r venues.Record) bool { return r.ID == id }) + 1
}

// ShareEntry is one venue's slice of total review volume.
type ShareEntry struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	ReviewCount int     `json:"reviews" yaml:"reviews"`
	Percent     float64 `json:"percent" yaml:"percent"`
	Rank        int     `json:"rank" yaml:"rank"`
}

// Share computes review-volume share over records with reviews, ordered by
// volume.
func Share(records []venues.Record) []ShareEntry {
	valid := make([]venues.Record, 0, len(records))
	total := 0
	for _, r := range records {
		if r.ReviewCount > 0 {
			valid = append(valid, r)
			total += r.ReviewCount
		}
	}
	out := make([]ShareEntry, 0, len(valid))
	for i, r := range SortByPresence(valid) {
		out = append(out, ShareEntry{
			ID:          r.ID,
			Name:        r.Name,
			ReviewCount: r.ReviewCount,
			Percent:     float64(r.ReviewCount) / float64(total) * 100,
			Rank:        i + 1,
		})
	}
	return out
}

// MarketAverage is the mean rating over records with reviews.
func MarketAverage(records []venues.Record) float64 {
	var sum float64
	n := 0
	for _, r := range records {
		if r.ReviewCount > 0 {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TopByVolume returns at most n records with the most reviews.
func TopByVolume(records []venues.Record, n int) []venues.Record {
	if n <= 0 {
		n = constants.TopVenues
	}
	sorted := SortByPresence(records)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Point is one venue on the rating/volume scatter.
type Point struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	X     int     `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Color string  `json:"color" yaml:"color"`
}

// Scatter places every record at (reviews, rating), colored by p. A nil
// palette uses the default one.
func Scatter(records []venues.Record, p *palette.Palette) []Point {
	if p == nil {
		p = palette.Default()
	}
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{
			ID:    r.ID,
			Name:  r.Name,
			X:     r.ReviewCount,
			Y:     r.Rating,
			Color: p.ColorOf(r.Name),
		})
	}
	return out
}
