package palette_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/palette"
)

func TestColorOfRules(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Casino International", "#ef4444"},
		{"Casino Iveria Batumi", "#6366f1"},
		{"Casino Peace", "#8b5cf6"},
		{"Princess Casino", "#ec4899"},
		{"Eclipse Casino", "#f43f5e"},
		{"Casino Otium", "#10b981"},
		{"Casino Soho", "#06b6d4"},
		{"Royal Casino", "#f59e0b"},
		{"Empire Casino", "#84cc16"},
		{"Grand Bellagio", "#059669"},
		{"Billionaire Casino", "#0ea5e9"},
		{"Billioner Club", "#0ea5e9"},
		{"Casino Colosseum", "#7c3aed"},
		{"Collosseum", "#7c3aed"},
		{"ROYAL casino", "#f59e0b"},
		{"International Royal", "#ef4444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, palette.ColorOf(tt.name))
		})
	}
}

func TestColorOfDeterministic(t *testing.T) {
	for range 5 {
		assert.Equal(t, "#f59e0b", palette.ColorOf("Royal Casino"))
		assert.Equal(t, "#f59e0b", palette.ColorOf("Unknown Venue XYZ"))
	}
}

func TestColorOfFallback(t *testing.T) {
	// Values computed with the dashboard's hash.
	tests := []struct {
		name string
		want string
	}{
		{"Unknown Venue XYZ", "#f59e0b"},
		{"Casino Batumi", "#eab308"},
		{"Grand Palace", "#ef4444"},
		{"New Venue", "#eab308"},
		{"Kazino 🎰", "#ec4899"},
		{"a", "#8b5cf6"},
		{"", "#6366f1"},
	}

	p := palette.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ColorOf(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, p.Fallback, got)
		})
	}
}

func TestColors(t *testing.T) {
	got := palette.Default().Colors("Casino Soho", "Casino Otium")
	assert.Equal(t, map[string]string{"Casino Soho": "#06b6d4", "Casino Otium": "#10b981"}, got)
}

func TestEmptyFallback(t *testing.T) {
	p := &palette.Palette{}
	assert.Equal(t, "", p.ColorOf("anything"))
	assert.True(t, errors.IsValidationError(p.Validate()))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, palette.Default().Validate())

	p := palette.Default()
	p.Rules = append(p.Rules, palette.Rule{Fragments: []string{"x"}})
	err := p.Validate()
	var re *palette.RuleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 12, re.Index)
	assert.True(t, errors.IsValidationError(err))
}

func TestPaletteYAML(t *testing.T) {
	data := []byte(`
rules:
  - fragments: [sheraton]
    color: "#111111"
fallback: ["#222222"]
`)
	var p palette.Palette
	require.NoError(t, yaml.Unmarshal(data, &p))
	assert.Equal(t, "#111111", p.ColorOf("Sheraton Batumi"))
	assert.Equal(t, "#222222", p.ColorOf("Royal Casino"))
}
