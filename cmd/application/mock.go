package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/sources"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
)

// Mock provides a mock implementation of Application for testing.
// A nil function field yields a zero or default value.
type Mock struct {
	ClientFunc            func() (venuemap.Client, error)
	ClientWithOptionsFunc func(opts ...venuemap.Option) (venuemap.Client, error)
	SourceFunc            func() (sources.Source, error)
	TargetsFunc           func() (*targets.Config, error)
	LoggerFunc            func() *zerolog.Logger
	OutputFormatFunc      func() string
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (venuemap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// ClientWithOptions returns a client using the mock function, or a new
// in-memory client built from opts.
func (m *Mock) ClientWithOptions(opts ...venuemap.Option) (venuemap.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return venuemap.New(opts...)
}

// Source returns a source using the mock function or a configuration error.
func (m *Mock) Source() (sources.Source, error) {
	if m.SourceFunc != nil {
		return m.SourceFunc()
	}
	return nil, errors.NewConfigError("source", "no source configured", nil)
}

// Targets returns targets using the mock function or the built-in market.
func (m *Mock) Targets() (*targets.Config, error) {
	if m.TargetsFunc != nil {
		return m.TargetsFunc()
	}
	return targets.Default(), nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
