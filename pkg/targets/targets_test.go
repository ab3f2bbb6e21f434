package targets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

func TestDefault(t *testing.T) {
	cfg := targets.Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Venues, 12)
	assert.Equal(t, "Batumi, Georgia", cfg.Location)
	assert.Equal(t, "international", cfg.Subject)
	assert.Equal(t, "Batumi", cfg.Address())

	for _, v := range cfg.Venues {
		assert.Greater(t, len(v.ExternalPlaceID), 5, v.Name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
location: Tbilisi, Georgia
fallback_address: Tbilisi
subject: ambassadori
lat_lng:
  latitude: 41.7151
  longitude: 44.8271
venues:
  - name: Casino Ambassadori
    place_id: ChIJambassadori01
  - name: Casino Adjara
palette:
  rules:
    - fragments: [ambassadori]
      color: "#000000"
  fallback: ["#ffffff"]
`), 0o600))

	cfg, err := targets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Tbilisi, Georgia", cfg.Location)
	assert.Equal(t, "Tbilisi", cfg.Address())
	require.NotNil(t, cfg.LatLng)
	assert.InDelta(t, 41.7151, cfg.LatLng.Latitude, 1e-9)
	assert.Equal(t, venues.Targets{
		{Name: "Casino Ambassadori", ExternalPlaceID: "ChIJambassadori01"},
		{Name: "Casino Adjara"},
	}, cfg.Venues)
	assert.Equal(t, "#000000", cfg.ColorOf("Casino Ambassadori"))
	assert.Equal(t, "#ffffff", cfg.ColorOf("Casino Adjara"))
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := targets.Parse([]byte("subject: otium\n"), "inline")
	require.NoError(t, err)
	assert.Equal(t, "otium", cfg.Subject)
	assert.Len(t, cfg.Venues, 12)
	assert.Equal(t, "#f59e0b", cfg.ColorOf("Royal Casino"))
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := targets.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := targets.Parse([]byte("venues: [unclosed"), "bad.yaml")
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("blank venue", func(t *testing.T) {
		_, err := targets.Parse([]byte("venues:\n  - name: \"\"\n"), "blank.yaml")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*targets.Config)
	}{
		{"no venues", func(c *targets.Config) { c.Venues = venues.Targets{} }},
		{"blank name", func(c *targets.Config) { c.Venues = venues.Targets{{Name: "  "}} }},
		{"duplicate name", func(c *targets.Config) {
			c.Venues = venues.Targets{{Name: "Casino Soho"}, {Name: "casino soho"}}
		}},
		{"latitude", func(c *targets.Config) { c.LatLng = &targets.LatLng{Latitude: 91} }},
		{"longitude", func(c *targets.Config) { c.LatLng = &targets.LatLng{Longitude: -181} }},
		{"palette", func(c *targets.Config) { c.Palette.Fallback = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := targets.Default()
			tt.mutate(cfg)
			assert.True(t, errors.IsValidationError(cfg.Validate()))
		})
	}
}

func TestSubjectOf(t *testing.T) {
	records := []venues.Record{
		{ID: "a", Name: "Casino Soho"},
		{ID: "b", Name: "Casino INTERNATIONAL"},
		{ID: "c", Name: "International Hotel"},
	}
	cfg := targets.Default()

	got, ok := cfg.SubjectOf(records)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	_, ok = cfg.SubjectOf(records[:1])
	assert.False(t, ok)

	_, ok = targets.FindSubject(records, "")
	assert.False(t, ok)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := targets.Default().Marshal()
	require.NoError(t, err)

	cfg, err := targets.Parse(data, "roundtrip")
	require.NoError(t, err)
	assert.Equal(t, targets.Default().Venues, cfg.Venues)
	assert.Equal(t, targets.Default().Palette, cfg.Palette)
}
