package reconciler

import (
	"strings"
	"unicode"
)

// Matcher decides whether a citation title names an existing record.
type Matcher interface {
	Match(candidateName, recordName string) bool
}

// MatcherFunc adapts a plain function to Matcher.
type MatcherFunc func(candidateName, recordName string) bool

// Match calls f.
func (f MatcherFunc) Match(candidateName, recordName string) bool {
	return f(candidateName, recordName)
}

// Containment matches when both slugs are non-empty and one contains the
// other. "Otium" matches "Casino Otium Batumi".
//
// A bare substring check would let an empty slug, such as a title written
// only in Georgian script, match the first record. Containment never matches
// an empty slug.
type Containment struct{}

// Match implements Matcher.
func (Containment) Match(candidateName, recordName string) bool {
	a, b := Slug(candidateName), Slug(recordName)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// TokenSet matches when every word of the shorter name appears as a word of
// the longer one. Unlike Containment it will not match "Royal" inside
// "Royalty Lounge".
type TokenSet struct{}

// Match implements Matcher.
func (TokenSet) Match(candidateName, recordName string) bool {
	a, b := tokens(candidateName), tokens(recordName)
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	for tok := range a {
		if _, ok := b[tok]; !ok {
			return false
		}
	}
	return true
}

func tokens(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
