// Package reconciler turns a provider response into a deduplicated,
// identity-resolved set of venue records.
//
// A pass folds parsed rows into an empty key→record table in input order,
// then lets grounding citations enrich (never create) the records in it.
package reconciler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/parser"
	"github.com/agentstation/venuemap/pkg/venues"
)

// Resolver holds immutable configuration only and is safe for concurrent use.
type Resolver struct {
	matcher         Matcher
	fallbackAddress string
	mapLinkBase     string
	logger          *zerolog.Logger
}

// New creates a Resolver with options.
func New(opts ...Option) (*Resolver, error) {
	options, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		matcher:         options.matcher,
		fallbackAddress: options.fallbackAddress,
		mapLinkBase:     options.mapLinkBase,
		logger:          options.logger,
	}, nil
}

// Stats describes one resolution pass.
type Stats struct {
	Rows              int `json:"rows"`
	SkippedZeroVolume int `json:"skipped_zero_volume"`
	SkippedNoKey      int `json:"skipped_no_key"`
	Replaced          int `json:"replaced"`
	CitationsMatched  int `json:"citations_matched"`
	CitationsDropped  int `json:"citations_dropped"`
	Records           int `json:"records"`
}

// table is the ordered fold target. order records first appearance so that
// citation scans and output are deterministic.
type table struct {
	byKey map[string]*venues.Record
	order []string
}

func newTable() *table {
	return &table{byKey: make(map[string]*venues.Record)}
}

// put stores r under key and reports whether an earlier record was replaced.
func (t *table) put(key string, r venues.Record) bool {
	if existing, ok := t.byKey[key]; ok {
		*existing = r
		return true
	}
	t.byKey[key] = &r
	t.order = append(t.order, key)
	return false
}

func (t *table) values() []venues.Record {
	out := make([]venues.Record, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, *t.byKey[k])
	}
	return out
}

// Resolve runs one pass and returns the resolved records. The result order
// is the order in which keys first appeared and carries no other meaning.
func (r *Resolver) Resolve(text string, citations []venues.Citation) []venues.Record {
	records, _ := r.ResolveWithStats(text, citations)
	return records
}

// ResolveWithStats is Resolve that also reports what the pass did.
func (r *Resolver) ResolveWithStats(text string, citations []venues.Citation) ([]venues.Record, Stats) {
	var stats Stats
	t := newTable()

	for row := range parser.Parse(text, r.fallbackAddress) {
		stats.Rows++
		if row.ReviewCount == 0 {
			stats.SkippedZeroVolume++
			continue
		}
		key := Key(row.PlaceID, row.Name)
		if key == "" {
			// a name with no [a-z0-9] and no usable place id has no identity
			stats.SkippedNoKey++
			continue
		}
		if t.put(key, r.record(key, row)) {
			stats.Replaced++
		}
	}

	for _, c := range citations {
		if c.Title == "" {
			stats.CitationsDropped++
			continue
		}
		rec := r.match(t, c)
		if rec == nil {
			stats.CitationsDropped++
			r.logger.Debug().
				Str("title", c.Title).
				Str("place_id", c.ExternalPlaceID).
				Msg("Discarded citation without matching record")
			continue
		}
		if c.VerifiedURI != "" {
			rec.MapLink = c.VerifiedURI
		}
		if rec.ExternalPlaceID == "" && c.ExternalPlaceID != "" {
			rec.ExternalPlaceID = c.ExternalPlaceID
		}
		stats.CitationsMatched++
	}

	records := t.values()
	stats.Records = len(records)
	return records, stats
}

func (r *Resolver) record(key string, row parser.Row) venues.Record {
	return venues.Record{
		ID:              key,
		ExternalPlaceID: row.PlaceID,
		Name:            row.Name,
		Rating:          row.Rating,
		ReviewCount:     row.ReviewCount,
		Address:         row.Address,
		MapLink:         venues.SearchLink(r.mapLinkBase, row.Name),
	}
}

// match finds the record a citation refers to: by place id key first, then
// by the first record in insertion order whose name the matcher accepts.
func (r *Resolver) match(t *table, c venues.Citation) *venues.Record {
	if c.ExternalPlaceID != "" {
		if rec, ok := t.byKey[c.ExternalPlaceID]; ok {
			return rec
		}
	}
	var found *venues.Record
	for _, k := range t.order {
		rec := t.byKey[k]
		if !r.matcher.Match(c.Title, rec.Name) {
			continue
		}
		if found == nil {
			found = rec
			continue
		}
		r.logger.Debug().
			Str("title", c.Title).
			Str("chosen", found.Name).
			Str("also", rec.Name).
			Msg("Ambiguous citation match, keeping first")
		break
	}
	return found
}

// Assemble resolves resp and packages the result as a snapshot taken at at.
// A pass that yields no records returns a *errors.NoDataError.
func (r *Resolver) Assemble(at time.Time, resp venues.Response) (*venues.Snapshot, error) {
	records, stats := r.ResolveWithStats(resp.Text, resp.Citations)
	r.logger.Debug().
		Int("rows", stats.Rows).
		Int("skipped_zero_volume", stats.SkippedZeroVolume).
		Int("skipped_no_key", stats.SkippedNoKey).
		Int("replaced", stats.Replaced).
		Int("citations_matched", stats.CitationsMatched).
		Int("citations_dropped", stats.CitationsDropped).
		Int("records", stats.Records).
		Msg("Resolved provider response")

	if len(records) == 0 {
		return nil, errors.NewNoDataError("", stats.Rows)
	}
	return venues.NewSnapshot(at, records)
}
