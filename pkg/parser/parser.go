// Package parser extracts venue rows from the loosely tabular text returned
// by the AI provider.
//
// The model is asked for a Markdown table but is not trusted to produce one.
// Any line with enough pipe separators is a candidate row; headers and
// separator lines are skipped; everything else degrades to zero values
// rather than failing.
package parser

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/venuemap/pkg/constants"
)

// Row is a normalized table row.
type Row struct {
	Name        string  `json:"name" yaml:"name"`
	Rating      float64 `json:"rating" yaml:"rating"`
	ReviewCount int     `json:"reviews" yaml:"reviews"`
	PlaceID     string  `json:"placeId,omitempty" yaml:"place_id,omitempty"`
	Address     string  `json:"address" yaml:"address"`
}

var (
	decimalRun = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?|\.[0-9]+`)
	digitRun   = regexp.MustCompile(`[0-9]+`)
)

// Rows lazily yields the cells of every accepted row in input order.
// The sequence stops as soon as the consumer stops ranging over it.
func Rows(text string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for line := range strings.Lines(text) {
			cells, ok := splitRow(line)
			if !ok {
				continue
			}
			if !yield(cells) {
				return
			}
		}
	}
}

// splitRow applies the candidate and header rules to a single line.
func splitRow(line string) ([]string, bool) {
	if strings.Count(line, "|") < constants.MinTableSeparators {
		return nil, false
	}

	cells := make([]string, 0, 6)
	for piece := range strings.SplitSeq(line, "|") {
		if piece = strings.TrimSpace(piece); piece != "" {
			cells = append(cells, piece)
		}
	}
	if len(cells) < constants.MinTableCells {
		return nil, false
	}
	if strings.Contains(strings.ToLower(cells[0]), "name") || strings.Contains(cells[0], "---") {
		return nil, false
	}
	return cells, true
}

// Normalize converts raw cells into a typed row. It never fails: unparsable
// numbers become zero and a missing address becomes fallbackAddress. Cells
// past the fifth are ignored.
func Normalize(cells []string, fallbackAddress string) Row {
	row := Row{Address: fallbackAddress}
	if len(cells) > 0 {
		row.Name = strings.TrimSpace(cells[0])
	}
	if len(cells) > 1 {
		row.Rating = parseRating(cells[1])
	}
	if len(cells) > 2 {
		row.ReviewCount = parseReviewCount(cells[2])
	}
	if len(cells) > 3 {
		row.PlaceID = strings.TrimSpace(cells[3])
	}
	if len(cells) > 4 {
		if addr := strings.TrimSpace(cells[4]); addr != "" {
			row.Address = addr
		}
	}
	return row
}

func parseRating(s string) float64 {
	m := decimalRun.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseReviewCount(s string) int {
	m := digitRun.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		// out of range for int
		return 0
	}
	return v
}

// Parse composes Rows and Normalize.
func Parse(text, fallbackAddress string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for cells := range Rows(text) {
			if !yield(Normalize(cells, fallbackAddress)) {
				return
			}
		}
	}
}

// Count returns the number of candidate rows in text.
func Count(text string) int {
	n := 0
	for range Rows(text) {
		n++
	}
	return n
}
