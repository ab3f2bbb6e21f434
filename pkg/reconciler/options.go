package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
)

type options struct {
	matcher         Matcher
	fallbackAddress string
	mapLinkBase     string
	logger          *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		matcher:         Containment{},
		fallbackAddress: constants.DefaultFallbackAddress,
		mapLinkBase:     constants.DefaultMapSearchURL,
		logger:          logging.Default(),
	}
}

// Option is a function that configures a Resolver.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// WithMatcher sets the citation title matcher.
func WithMatcher(m Matcher) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{
				Field:   "matcher",
				Message: "cannot be nil",
			}
		}
		o.matcher = m
		return nil
	}
}

// WithFallbackAddress sets the address used when a row has none.
func WithFallbackAddress(address string) Option {
	return func(o *options) error {
		o.fallbackAddress = address
		return nil
	}
}

// WithMapLinkBase sets the search URL prefix for unverified map links.
func WithMapLinkBase(base string) Option {
	return func(o *options) error {
		if base == "" {
			return &errors.ValidationError{
				Field:   "map_link_base",
				Message: "cannot be empty",
			}
		}
		o.mapLinkBase = base
		return nil
	}
}

// WithLogger sets the logger used for debug tracing of a pass.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
