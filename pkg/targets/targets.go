// Package targets holds the market configuration: which venues to ask the
// provider about, where they are, which one is the benchmark subject and
// how venues are colored.
package targets

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/palette"
	"github.com/agentstation/venuemap/pkg/venues"
)

// LatLng biases map grounding toward a point.
type LatLng struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Config is the market definition.
type Config struct {
	Location        string           `json:"location" yaml:"location"`
	FallbackAddress string           `json:"fallback_address,omitempty" yaml:"fallback_address,omitempty"`
	Subject         string           `json:"subject" yaml:"subject"`
	LatLng          *LatLng          `json:"lat_lng,omitempty" yaml:"lat_lng,omitempty"`
	Venues          venues.Targets   `json:"venues" yaml:"venues"`
	Palette         *palette.Palette `json:"palette,omitempty" yaml:"palette,omitempty"`
}

// Default returns the built-in Batumi market.
func Default() *Config {
	return &Config{
		Location:        constants.DefaultLocation,
		FallbackAddress: constants.DefaultFallbackAddress,
		Subject:         constants.DefaultSubjectMarker,
		Venues: venues.Targets{
			{Name: "Casino International", ExternalPlaceID: "ChIJr4Sl22uGZ0ARAIlIlZkhxqo"},
			{Name: "Casino Iveria Batumi", ExternalPlaceID: "ChIJH42730aGZ0ARsDS-v-Q9FWU"},
			{Name: "Casino Peace", ExternalPlaceID: "ChIJ1a-bwkGGZ0ARzveIn7rXwdM"},
			{Name: "Princess Casino", ExternalPlaceID: "ChIJyWDgcECGZ0ARdSusE3b96pw"},
			{Name: "Eclipse Casino", ExternalPlaceID: "ChIJT7S5CJyFZ0AROGvduE06fIw"},
			{Name: "Casino Otium", ExternalPlaceID: "ChIJ7bPMpg2HZ0AR7w95mwJxPfE"},
			{Name: "Casino Soho", ExternalPlaceID: "ChIJTR0cAQCHZ0ARE7aWIZhZGuU"},
			{Name: "Royal Casino", ExternalPlaceID: "ChIJVQe4payHZ0ARKyGENU8w5OE"},
			{Name: "Empire Casino", ExternalPlaceID: "ChIJ0Y4pXKSHZ0ARN7prcblZQ8Q"},
			{Name: "Grand Bellagio", ExternalPlaceID: "ChIJCz76Zk-FZ0ARz1T95QGgJA8"},
			{Name: "Billionaire Casino", ExternalPlaceID: "ChIJ7fA7A36HZ0AR-HJobLqNnQo"},
			{Name: "Casino Colosseum", ExternalPlaceID: "ChIJYYGQeIuFZ0ARmkcRZU1VJOA"},
		},
		Palette: palette.Default(),
	}
}

// Load reads a YAML market file. Fields the file leaves out keep their
// built-in defaults, except venues: a file that lists venues replaces the
// whole default list.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML market data. name is used in error messages only.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Default()
	cfg.Venues = nil
	cfg.Palette = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if cfg.Venues == nil {
		cfg.Venues = Default().Venues
	}
	if cfg.Palette == nil {
		cfg.Palette = palette.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Venues) == 0 {
		return errors.NewValidationError("venues", nil, "at least one target venue is required")
	}
	seen := make(map[string]bool, len(c.Venues))
	for i, v := range c.Venues {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return errors.NewValidationError(fmt.Sprintf("venues[%d].name", i), v.Name, "cannot be empty")
		}
		if seen[strings.ToLower(name)] {
			return errors.NewValidationError(fmt.Sprintf("venues[%d].name", i), v.Name, "duplicate venue")
		}
		seen[strings.ToLower(name)] = true
	}
	if c.LatLng != nil {
		if c.LatLng.Latitude < -90 || c.LatLng.Latitude > 90 {
			return errors.NewValidationError("lat_lng.latitude", c.LatLng.Latitude, "must be within [-90, 90]")
		}
		if c.LatLng.Longitude < -180 || c.LatLng.Longitude > 180 {
			return errors.NewValidationError("lat_lng.longitude", c.LatLng.Longitude, "must be within [-180, 180]")
		}
	}
	if c.Palette != nil {
		if err := c.Palette.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SubjectOf returns the first record whose lowercased name contains the
// subject marker.
func (c *Config) SubjectOf(records []venues.Record) (venues.Record, bool) {
	return FindSubject(records, c.Subject)
}

// FindSubject returns the first record whose lowercased name contains
// marker. An empty marker never matches.
func FindSubject(records []venues.Record, marker string) (venues.Record, bool) {
	for _, r := range records {
		if IsSubject(r.Name, marker) {
			return r, true
		}
	}
	return venues.Record{}, false
}

// IsSubject reports whether name carries marker, case-insensitively.
func IsSubject(name, marker string) bool {
	marker = strings.ToLower(marker)
	return marker != "" && strings.Contains(strings.ToLower(name), marker)
}

// ColorOf returns the color for a venue name under this configuration.
func (c *Config) ColorOf(name string) string {
	if c.Palette == nil {
		return palette.ColorOf(name)
	}
	return c.Palette.ColorOf(name)
}

// Address returns the fallback address for rows that carry none.
func (c *Config) Address() string {
	if c.FallbackAddress != "" {
		return c.FallbackAddress
	}
	return constants.DefaultFallbackAddress
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
}
