package targets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/pkg/palette"
	pkgtargets "github.com/agentstation/venuemap/pkg/targets"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestTargetsTable(t *testing.T) {
	out := run(t, NewCommand(&application.Mock{}))
	for _, tgt := range pkgtargets.Default().Venues {
		assert.Contains(t, out, tgt.Name)
	}
}

func TestTargetsYAMLRoundTrips(t *testing.T) {
	app := &application.Mock{OutputFormatFunc: func() string { return "yaml" }}
	out := run(t, NewCommand(app))

	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	cfg, err := pkgtargets.Load(path)
	require.NoError(t, err)
	assert.Equal(t, pkgtargets.Default().Venues, cfg.Venues)
	assert.Equal(t, pkgtargets.Default().Subject, cfg.Subject)
}

func TestColor(t *testing.T) {
	out := run(t, NewColorCommand(&application.Mock{}), "Casino Otium", "Unknown Hall")
	assert.Contains(t, out, palette.ColorOf("Casino Otium"))
	assert.Contains(t, out, palette.ColorOf("Unknown Hall"))

	cmd := NewColorCommand(&application.Mock{})
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute(), "at least one name is required")
}
