package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

const endpoint = "models.generateContent"

// BuildPrompt asks for a Markdown table covering every target.
func BuildPrompt(targets venues.Targets, location string) string {
	var b strings.Builder
	b.WriteString("REAL-TIME MARKET RESEARCH TASK:\n")
	fmt.Fprintf(&b, "Perform a live lookup of the following CASINO venues in %s.\n\n", location)
	b.WriteString("TARGET VENUES:\n")
	for _, t := range targets {
		if t.ExternalPlaceID != "" {
			fmt.Fprintf(&b, "- %s (Place ID: %s)\n", t.Name, t.ExternalPlaceID)
			continue
		}
		fmt.Fprintf(&b, "- %s\n", t.Name)
	}
	b.WriteString(`
RULES:
- Report data for ALL listed venues.
- Report the casino listing, not the hotel listing, when both exist.
- When a venue has several listings, use the one matching the given Place ID.
- Review Count must be a plain integer without separators.

Format the response as a Markdown table:
| Venue Name | Rating | Review Count | Place ID | Address |
`)
	return b.String()
}

// Query asks the model about targets and returns its text together with
// the grounding citations.
func (c *Client) Query(ctx context.Context, targets venues.Targets) (venues.Response, error) {
	if len(targets) == 0 {
		return venues.Response{}, errors.NewValidationError("targets", nil, "at least one target venue is required")
	}

	client, err := c.sdk(ctx)
	if err != nil {
		return venues.Response{}, err
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(BuildPrompt(targets, c.cfg.Location)), c.generateConfig())
	if err != nil {
		return venues.Response{}, c.wrapError(ctx, err)
	}

	out := venues.Response{Text: resp.Text(), Citations: Citations(resp)}
	c.logger.Debug().
		Str("model", c.cfg.Model).
		Int("targets", len(targets)).
		Int("text_bytes", len(out.Text)).
		Int("citations", len(out.Citations)).
		Dur("duration", time.Since(start)).
		Msg("Gemini query completed")
	return out, nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	temperature := c.cfg.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	// The SDK only serializes the Maps tool for Vertex AI. The Gemini API
	// accepts it on the wire, so there it is added to the raw request body.
	if c.backend == genai.BackendVertexAI {
		config.Tools = append([]*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}}, config.Tools...)
	} else {
		config.HTTPOptions = &genai.HTTPOptions{
			ExtraBody: map[string]any{
				"tools": []any{
					map[string]any{"googleMaps": map[string]any{}},
					map[string]any{"googleSearch": map[string]any{}},
				},
			},
		}
	}

	if ll := c.cfg.LatLng; ll != nil {
		lat, lng := ll.Latitude, ll.Longitude
		config.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: &lat, Longitude: &lng},
			},
		}
	}
	return config
}

// Citations converts the first candidate's grounding chunks. Maps chunks
// carry a place resource name ("places/<id>") which is reduced to the id.
func Citations(resp *genai.GenerateContentResponse) []venues.Citation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	var out []venues.Citation
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Maps != nil:
			out = append(out, venues.Citation{
				Title:           chunk.Maps.Title,
				ExternalPlaceID: strings.TrimPrefix(chunk.Maps.PlaceID, "places/"),
				VerifiedURI:     chunk.Maps.URI,
			})
		case chunk.Web != nil:
			out = append(out, venues.Citation{
				Title:       chunk.Web.Title,
				VerifiedURI: chunk.Web.URI,
			})
		}
	}
	return out
}

func (c *Client) wrapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if ctxErr == context.DeadlineExceeded {
			return errors.Join(errors.ErrTimeout, err)
		}
		return errors.Join(errors.ErrCanceled, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return &errors.AuthenticationError{
				Provider: ID,
				Method:   "api_key",
				Message:  apiErr.Message,
				Err:      err,
			}
		}
		return &errors.APIError{
			Provider:   ID,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Endpoint:   endpoint,
			Err:        err,
		}
	}
	return &errors.APIError{
		Provider: ID,
		Message:  err.Error(),
		Endpoint: endpoint,
		Err:      err,
	}
}
