// Package palette assigns each venue a stable display color.
//
// Known venues get fixed brand colors through substring rules checked in
// priority order. Anything else hashes into a fallback palette, so the same
// name always gets the same color across runs and machines.
package palette

import (
	"strings"
	"unicode/utf16"
)

// Rule maps any of its name fragments to a color.
type Rule struct {
	Fragments []string `json:"fragments" yaml:"fragments"`
	Color     string   `json:"color" yaml:"color"`
}

// Palette is an ordered rule table plus the fallback colors.
type Palette struct {
	Rules    []Rule   `json:"rules" yaml:"rules"`
	Fallback []string `json:"fallback" yaml:"fallback"`
}

// Default returns the built-in Batumi palette.
func Default() *Palette {
	return &Palette{
		Rules: []Rule{
			{Fragments: []string{"international"}, Color: "#ef4444"},
			{Fragments: []string{"iveria"}, Color: "#6366f1"},
			{Fragments: []string{"peace"}, Color: "#8b5cf6"},
			{Fragments: []string{"princess"}, Color: "#ec4899"},
			{Fragments: []string{"eclipse"}, Color: "#f43f5e"},
			{Fragments: []string{"otium"}, Color: "#10b981"},
			{Fragments: []string{"soho"}, Color: "#06b6d4"},
			{Fragments: []string{"royal"}, Color: "#f59e0b"},
			{Fragments: []string{"empire"}, Color: "#84cc16"},
			{Fragments: []string{"bellagio"}, Color: "#059669"},
			{Fragments: []string{"billionaire", "billioner"}, Color: "#0ea5e9"},
			{Fragments: []string{"colosseum", "collosseum"}, Color: "#7c3aed"},
		},
		Fallback: []string{
			"#6366f1", "#8b5cf6", "#ec4899", "#f43f5e",
			"#ef4444", "#f97316", "#f59e0b", "#eab308",
		},
	}
}

var defaultPalette = Default()

// ColorOf returns the color for name using the default palette.
func ColorOf(name string) string {
	return defaultPalette.ColorOf(name)
}

// ColorOf returns the color for name. Rule fragments are compared against
// the lowercased name; the first rule with a matching fragment wins.
func (p *Palette) ColorOf(name string) string {
	n := strings.ToLower(name)
	for _, rule := range p.Rules {
		for _, frag := range rule.Fragments {
			if frag != "" && strings.Contains(n, strings.ToLower(frag)) {
				return rule.Color
			}
		}
	}
	if len(p.Fallback) == 0 {
		return ""
	}
	return p.Fallback[fallbackIndex(n, len(p.Fallback))]
}

// Colors maps every name to its color.
func (p *Palette) Colors(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = p.ColorOf(name)
	}
	return out
}

// Validate checks that the palette can produce a color for every name.
func (p *Palette) Validate() error {
	if len(p.Fallback) == 0 {
		return errEmptyFallback
	}
	for i, rule := range p.Rules {
		if rule.Color == "" {
			return &RuleError{Index: i, Message: "color is empty"}
		}
		if len(rule.Fragments) == 0 {
			return &RuleError{Index: i, Message: "no fragments"}
		}
	}
	return nil
}

// fallbackIndex hashes UTF-16 code units with h = c + (h<<5) - h, where the
// shift wraps to 32 bits but the running sum does not, exactly as the
// dashboard's browser code computes it. Keeping those semantics keeps colors
// identical between the API and the UI.
func fallbackIndex(lowered string, n int) int {
	var h int64
	for _, c := range utf16.Encode([]rune(lowered)) {
		h = int64(c) + (int64(int32(h)<<5) - h)
	}
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}
