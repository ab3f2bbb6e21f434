package replay_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/internal/sources/replay"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

const table = "| Casino Otium | 4.6 | 1,204 | ChIJ7bPMpg2HZ0AR7w95mwJxPfE | Rustaveli St |\n"

func TestQuery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "response.md")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	t.Run("text only", func(t *testing.T) {
		resp, err := replay.New(path).Query(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, table, resp.Text)
		assert.Nil(t, resp.Citations)
	})

	t.Run("with sidecar", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path+replay.CitationsSuffix, []byte(`
- title: Casino Otium
  place_id: ChIJ7bPMpg2HZ0AR7w95mwJxPfE
  uri: https://maps.google.com/?cid=1
`), 0o600))
		t.Cleanup(func() { _ = os.Remove(path + replay.CitationsSuffix) })

		resp, err := replay.New(path).Query(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []venues.Citation{{
			Title:           "Casino Otium",
			ExternalPlaceID: "ChIJ7bPMpg2HZ0AR7w95mwJxPfE",
			VerifiedURI:     "https://maps.google.com/?cid=1",
		}}, resp.Citations)
	})

	t.Run("explicit citations file", func(t *testing.T) {
		other := filepath.Join(dir, "other.yaml")
		require.NoError(t, os.WriteFile(other, []byte("- title: Casino Soho\n"), 0o600))

		resp, err := replay.New(path, replay.WithCitationsFile(other)).Query(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []venues.Citation{{Title: "Casino Soho"}}, resp.Citations)
	})

	t.Run("bad sidecar", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("title: [unclosed"), 0o600))

		_, err := replay.New(path, replay.WithCitationsFile(bad)).Query(context.Background(), nil)
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := replay.New(filepath.Join(dir, "nope.md")).Query(context.Background(), nil)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := replay.New(path).Query(ctx, nil)
		assert.True(t, errors.IsCanceled(err))
	})
}

func TestSaveAndRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.md")

	resp := venues.Response{
		Text:      table,
		Citations: []venues.Citation{{Title: "Casino Otium", VerifiedURI: "https://x"}},
	}
	upstream := sources.Func{Name: "fake", Fn: func(context.Context, venues.Targets) (venues.Response, error) {
		return resp, nil
	}}

	rec := replay.Record(upstream, path)
	assert.Equal(t, "fake", rec.ID())
	got, err := rec.Query(context.Background(), venues.Targets{{Name: "Casino Otium"}})
	require.NoError(t, err)
	assert.Equal(t, resp, got)

	replayed, err := replay.New(path).Query(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, resp, replayed)

	require.NoError(t, replay.Save(path, venues.Response{Text: "plain"}))
	_, err = os.Stat(path + replay.CitationsSuffix)
	assert.True(t, os.IsNotExist(err), "stale sidecar removed")
}
