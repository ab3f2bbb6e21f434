// Package replay serves a previously saved provider response from disk so
// the pipeline can run offline.
//
// A response is stored as its raw text plus an optional citations sidecar
// named "<file>.citations.yaml".
package replay

import (
	"context"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/venues"
)

// ID is the source identifier.
const ID = "replay"

// CitationsSuffix is appended to a response file name to find its sidecar.
const CitationsSuffix = ".citations.yaml"

// Source reads a saved response.
type Source struct {
	path          string
	citationsPath string
}

// Option configures a replay source.
type Option func(*Source)

// WithCitationsFile overrides the sidecar location.
func WithCitationsFile(path string) Option {
	return func(s *Source) {
		s.citationsPath = path
	}
}

// New creates a replay source for the response stored at path.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path, citationsPath: path + CitationsSuffix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID implements sources.Source.
func (s *Source) ID() string { return ID }

// Path returns the response file.
func (s *Source) Path() string { return s.path }

// Query implements sources.Source. Targets are ignored; the file already
// holds whatever was asked for when it was recorded.
func (s *Source) Query(ctx context.Context, _ venues.Targets) (venues.Response, error) {
	if err := ctx.Err(); err != nil {
		return venues.Response{}, errors.Join(errors.ErrCanceled, err)
	}
	text, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return venues.Response{}, errors.NewNotFoundError("response file", s.path)
		}
		return venues.Response{}, errors.WrapIO("read", s.path, err)
	}
	citations, err := loadCitations(s.citationsPath)
	if err != nil {
		return venues.Response{}, err
	}
	return venues.Response{Text: string(text), Citations: citations}, nil
}

func loadCitations(path string) ([]venues.Citation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}
	var citations []venues.Citation
	if err := yaml.Unmarshal(data, &citations); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return citations, nil
}

// Save writes resp to path and its citations, if any, to the sidecar.
func Save(path string, resp venues.Response) error {
	if err := os.WriteFile(path, []byte(resp.Text), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	sidecar := path + CitationsSuffix
	if len(resp.Citations) == 0 {
		if err := os.Remove(sidecar); err != nil && !os.IsNotExist(err) {
			return errors.WrapIO("remove", sidecar, err)
		}
		return nil
	}
	data, err := yaml.Marshal(resp.Citations)
	if err != nil {
		return errors.WrapParse("yaml", sidecar, err)
	}
	if err := os.WriteFile(sidecar, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", sidecar, err)
	}
	return nil
}

// Recorder wraps a source and saves every successful response to a file.
type Recorder struct {
	sources.Source
	path string
}

// Record returns src wrapped so each response is saved to path.
func Record(src sources.Source, path string) *Recorder {
	return &Recorder{Source: src, path: path}
}

// Query implements sources.Source.
func (r *Recorder) Query(ctx context.Context, targets venues.Targets) (venues.Response, error) {
	resp, err := r.Source.Query(ctx, targets)
	if err != nil {
		return resp, err
	}
	if err := Save(r.path, resp); err != nil {
		return resp, err
	}
	return resp, nil
}
