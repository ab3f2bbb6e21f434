// Package venues defines the records exchanged between the AI provider, the
// reconciliation pipeline, snapshot stores and analytics.
package venues

import (
	"net/url"
	"strings"
)

// Record is one venue's state as of one observation.
//
// The JSON names match the documents stored by earlier versions of the
// dashboard so existing snapshot rows keep decoding.
type Record struct {
	ID              string  `json:"id" yaml:"id"`
	ExternalPlaceID string  `json:"placeId,omitempty" yaml:"place_id,omitempty"`
	Name            string  `json:"name" yaml:"name"`
	Rating          float64 `json:"rating" yaml:"rating"`
	ReviewCount     int     `json:"userRatingsTotal" yaml:"reviews"`
	Address         string  `json:"vicinity" yaml:"address"`
	MapLink         string  `json:"googleMapsUri" yaml:"map_link"`
}

// Citation is a grounding fact returned next to the model text. It may only
// enrich an existing record.
type Citation struct {
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	ExternalPlaceID string `json:"placeId,omitempty" yaml:"place_id,omitempty"`
	VerifiedURI     string `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// Target names a venue the provider must report on.
type Target struct {
	Name            string `json:"name" yaml:"name"`
	ExternalPlaceID string `json:"placeId,omitempty" yaml:"place_id,omitempty"`
}

// Targets is the caller-owned list of venues to request.
type Targets []Target

// Names returns the target names in order.
func (t Targets) Names() []string {
	names := make([]string, 0, len(t))
	for _, target := range t {
		names = append(names, target.Name)
	}
	return names
}

// Clone returns a copy that can be handed to collaborators.
func (t Targets) Clone() Targets {
	if t == nil {
		return nil
	}
	out := make(Targets, len(t))
	copy(out, t)
	return out
}

// Response is what an AI provider returns for one query.
type Response struct {
	Text      string     `json:"text" yaml:"text"`
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
}

// SearchLink builds a map search URL for name under base. The name is
// escaped the way browsers escape a URI component.
func SearchLink(base, name string) string {
	return base + escapeComponent(name)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
