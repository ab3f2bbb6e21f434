// Package gemini queries Google's Gemini models with Maps and Search
// grounding for current venue ratings.
//
// Two backends are supported. With an API key the Gemini API is used. With a
// Google Cloud project and no key the Vertex AI backend is used, authenticated
// through Application Default Credentials.
package gemini

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/targets"
)

// ID is the source identifier.
const ID = "gemini"

// credentialTimeout bounds ADC detection, which does not accept a context.
const credentialTimeout = 2 * time.Second

// Config configures the client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	// Location is the market named in the prompt, e.g. "Batumi, Georgia".
	Location string
	// LatLng biases map grounding toward a point.
	LatLng *targets.LatLng

	// Project and Region select the Vertex AI backend when APIKey is empty.
	Project string
	Region  string

	// BaseURL overrides the API endpoint.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client queries Gemini. It is safe for concurrent use.
type Client struct {
	cfg     Config
	backend genai.Backend
	logger  *zerolog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// New validates cfg and prepares a client. The underlying SDK client is
// created lazily on the first query.
func New(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = constants.DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = constants.DefaultTemperature
	}
	if cfg.Location == "" {
		cfg.Location = constants.DefaultLocation
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	backend := genai.BackendGeminiAPI
	switch {
	case cfg.APIKey != "":
	case cfg.Project != "":
		backend = genai.BackendVertexAI
	default:
		return nil, &errors.AuthenticationError{
			Provider: ID,
			Method:   "api_key",
			Message:  "API key required - set GEMINI_API_KEY (or GOOGLE_CLOUD_PROJECT for Vertex AI)",
		}
	}

	logger := cfg.Logger.With().Str("source", ID).Logger()
	return &Client{cfg: cfg, backend: backend, logger: &logger}, nil
}

// ID returns the source identifier.
func (c *Client) ID() string { return ID }

// Model returns the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// Backend returns the backend queries go to.
func (c *Client) Backend() genai.Backend { return c.backend }

func (c *Client) sdk(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	config := &genai.ClientConfig{
		Backend:    c.backend,
		HTTPClient: c.cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: c.cfg.BaseURL,
		},
	}
	if c.backend == genai.BackendVertexAI {
		creds, err := detectCredentials(ctx)
		if err != nil {
			return nil, err
		}
		config.Project = c.cfg.Project
		config.Location = c.cfg.Region
		config.Credentials = creds
	} else {
		config.APIKey = c.cfg.APIKey
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: ID,
			Message:   "failed to create genai client",
			Err:       err,
		}
	}
	c.client = client
	return client, nil
}

// detectCredentials looks up Application Default Credentials.
func detectCredentials(ctx context.Context) (*auth.Credentials, error) {
	type result struct {
		creds *auth.Credentials
		err   error
	}
	resultChan := make(chan result, 1)
	go func() {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		resultChan <- result{creds: creds, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, &errors.ConfigError{
				Component: ID,
				Message:   "no valid credentials found - run 'gcloud auth application-default login'",
				Err:       res.err,
			}
		}
		return res.creds, nil
	case <-time.After(credentialTimeout):
		return nil, &errors.ConfigError{
			Component: ID,
			Message:   "credential detection timed out",
		}
	case <-ctx.Done():
		return nil, errors.Join(errors.ErrCanceled, ctx.Err())
	}
}
