package reconciler

import (
	"strings"
	"unicode/utf16"

	"github.com/agentstation/venuemap/pkg/constants"
)

// Key derives the identity of a row. A place id longer than
// constants.MinPlaceIDLength wins; shorter ids are treated as noise and the
// slug of the name is used instead. Length is counted in UTF-16 code units.
func Key(placeID, name string) string {
	if utf16Len(placeID) > constants.MinPlaceIDLength {
		return placeID
	}
	return Slug(name)
}

// Slug lowercases s and drops everything outside [a-z0-9].
func Slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
