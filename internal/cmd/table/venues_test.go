package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/analytics"
	"github.com/agentstation/venuemap/pkg/palette"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

func testPalette() *palette.Palette {
	return &palette.Palette{
		Rules:    []palette.Rule{{Fragments: []string{"otium"}, Color: "#111111"}},
		Fallback: []string{"#999999"},
	}
}

func records() []venues.Record {
	return []venues.Record{
		{ID: "otium", ExternalPlaceID: "ChIJotium", Name: "Casino Otium", Rating: 4.6, ReviewCount: 1204, Address: "Rustaveli Ave"},
		{ID: "intl", Name: "Casino International", ReviewCount: 800},
	}
}

func TestVenuesToTableData(t *testing.T) {
	data := VenuesToTableData(records(), testPalette(), "international")

	require.Len(t, data.Rows, 2)
	assert.Len(t, data.Headers, len(data.ColumnAlignment))
	assert.Equal(t, []string{"1", "Casino Otium", "4.6", "1,204", "Rustaveli Ave", "ChIJotium", "#111111"}, data.Rows[0])
	assert.Equal(t, []string{"2", SubjectMark + "Casino International", "-", "800", "-", "-", "#999999"}, data.Rows[1])
}

func TestVenuesToTableDataWithoutSubject(t *testing.T) {
	data := VenuesToTableData(records(), testPalette(), "")
	for _, row := range data.Rows {
		assert.NotContains(t, row[1], SubjectMark)
	}
}

func TestSnapshotsToTableData(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap, err := venues.NewSnapshot(at, records())
	require.NoError(t, err)

	data := SnapshotsToTableData([]*venues.Snapshot{snap}, at.Add(2*time.Hour))
	require.Len(t, data.Rows, 1)
	row := data.Rows[0]
	assert.Equal(t, snap.ID(), row[0])
	assert.Equal(t, "2026-03-01T12:00:00Z", row[1])
	assert.Equal(t, "2 hours ago", row[2])
	assert.Equal(t, "2", row[3])
	assert.Equal(t, "2,004", row[4])
}

func TestShareToTableData(t *testing.T) {
	data := ShareToTableData([]analytics.ShareEntry{
		{Name: "Casino Otium", ReviewCount: 1204, Percent: 60.08, Rank: 1},
	})
	assert.Equal(t, [][]string{{"1", "Casino Otium", "1,204", "60.1%"}}, data.Rows)
}

func TestTargetsToTableData(t *testing.T) {
	cfg := &targets.Config{
		Subject: "international",
		Venues: venues.Targets{
			{Name: "Casino International", ExternalPlaceID: "ChIJintl"},
			{Name: "Casino Otium"},
		},
		Palette: testPalette(),
	}

	data := TargetsToTableData(cfg)
	assert.Equal(t, [][]string{
		{"Casino International", "ChIJintl", "#999999", "yes"},
		{"Casino Otium", "-", "#111111", ""},
	}, data.Rows)
}

func TestColorsToTableData(t *testing.T) {
	data := ColorsToTableData([]string{"Otium", "Peace"}, testPalette())
	assert.Equal(t, [][]string{{"Otium", "#111111"}, {"Peace", "#999999"}}, data.Rows)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "-", FormatRating(0))
	assert.Equal(t, "4.0", FormatRating(4))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "0", FormatNumber(0))
}
