package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/agentstation/venuemap/internal/sources/gemini"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
	"github.com/agentstation/venuemap/pkg/venues"
)

var twoTargets = venues.Targets{
	{Name: "Casino Otium", ExternalPlaceID: "ChIJ7bPMpg2HZ0AR7w95mwJxPfE"},
	{Name: "Casino Soho"},
}

// fakeAPI serves a canned generateContent response and records the last
// request body.
type fakeAPI struct {
	status int
	body   []byte

	mu      sync.Mutex
	path    string
	request map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.path = r.URL.Path
	f.request = nil
	_ = json.Unmarshal(data, &f.request)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write(f.body)
}

func newFake(t *testing.T, status int, body []byte) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{status: status, body: body}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func newClient(t *testing.T, srv *httptest.Server, mutate ...func(*gemini.Config)) *gemini.Client {
	t.Helper()
	cfg := gemini.Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := gemini.New(cfg)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		_, err := gemini.New(gemini.Config{})
		assert.True(t, errors.IsAPIKeyError(err))
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := gemini.New(gemini.Config{APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, "gemini", c.ID())
		assert.Equal(t, "gemini-2.5-flash", c.Model())
		assert.Equal(t, genai.BackendGeminiAPI, c.Backend())
	})

	t.Run("vertex with project", func(t *testing.T) {
		c, err := gemini.New(gemini.Config{Project: "my-project", Region: "europe-west1"})
		require.NoError(t, err)
		assert.Equal(t, genai.BackendVertexAI, c.Backend())
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := gemini.BuildPrompt(twoTargets, "Batumi, Georgia")
	assert.Contains(t, prompt, "in Batumi, Georgia")
	assert.Contains(t, prompt, "- Casino Otium (Place ID: ChIJ7bPMpg2HZ0AR7w95mwJxPfE)\n")
	assert.Contains(t, prompt, "- Casino Soho\n")
	assert.Contains(t, prompt, "| Venue Name | Rating | Review Count | Place ID | Address |")
}

func TestQuery(t *testing.T) {
	body, err := os.ReadFile("testdata/generate_content.json")
	require.NoError(t, err)
	fake, srv := newFake(t, http.StatusOK, body)

	c := newClient(t, srv, func(cfg *gemini.Config) {
		cfg.LatLng = &targets.LatLng{Latitude: 41.64, Longitude: 41.63}
	})
	resp, err := c.Query(context.Background(), twoTargets)
	require.NoError(t, err)

	assert.Contains(t, resp.Text, "| Casino Otium | 4.6 | 1204 |")
	assert.Equal(t, []venues.Citation{
		{Title: "Casino Otium", ExternalPlaceID: "ChIJ7bPMpg2HZ0AR7w95mwJxPfE", VerifiedURI: "https://maps.google.com/?cid=111"},
		{Title: "batumi-casinos.example", VerifiedURI: "https://batumi-casinos.example/soho"},
	}, resp.Citations)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.True(t, strings.HasSuffix(fake.path, "models/gemini-2.5-flash:generateContent"), fake.path)

	raw, err := json.Marshal(fake.request)
	require.NoError(t, err)
	sent := string(raw)
	assert.Contains(t, sent, `"googleMaps"`)
	assert.Contains(t, sent, `"googleSearch"`)
	assert.Contains(t, sent, `"latitude":41.64`)
	assert.Contains(t, sent, "Casino Soho")
}

func TestQueryValidation(t *testing.T) {
	_, srv := newFake(t, http.StatusOK, []byte(`{}`))
	c := newClient(t, srv)

	_, err := c.Query(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) {
			assert.True(t, errors.IsRateLimited(err))
		}},
		{"unavailable", http.StatusServiceUnavailable, func(t *testing.T, err error) {
			assert.True(t, errors.IsProviderUnavailable(err))
		}},
		{"bad key", http.StatusForbidden, func(t *testing.T, err error) {
			assert.True(t, errors.IsAPIKeyError(err))
		}},
		{"bad request", http.StatusBadRequest, func(t *testing.T, err error) {
			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "boom", apiErr.Message)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"error":{"code":` + strconv.Itoa(tt.status) + `,"message":"boom","status":"ERR"}}`)
			_, srv := newFake(t, tt.status, body)
			c := newClient(t, srv)

			_, err := c.Query(context.Background(), twoTargets)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestQueryCanceled(t *testing.T) {
	_, srv := newFake(t, http.StatusOK, []byte(`{}`))
	c := newClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Query(ctx, twoTargets)
	assert.True(t, errors.IsCanceled(err))
}

func TestCitations(t *testing.T) {
	assert.Nil(t, gemini.Citations(nil))
	assert.Nil(t, gemini.Citations(&genai.GenerateContentResponse{}))
	assert.Nil(t, gemini.Citations(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: []*genai.GroundingChunk{
			nil,
			{Maps: &genai.GroundingChunkMaps{Title: "Royal Casino", PlaceID: "ChIJVQe4payHZ0ARKyGENU8w5OE"}},
			{},
		}},
	}}}
	assert.Equal(t, []venues.Citation{
		{Title: "Royal Casino", ExternalPlaceID: "ChIJVQe4payHZ0ARKyGENU8w5OE"},
	}, gemini.Citations(resp))
}
