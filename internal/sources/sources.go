// Package sources defines where venue reports come from. A Source returns
// the raw model response; turning it into records is the reconciler's job.
package sources

import (
	"context"

	"github.com/agentstation/venuemap/pkg/venues"
)

// Source produces a provider response for a set of targets.
type Source interface {
	// ID identifies the source in logs and sync errors.
	ID() string
	// Query asks about targets. Implementations must honor ctx.
	Query(ctx context.Context, targets venues.Targets) (venues.Response, error)
}

// Func adapts a function to Source.
type Func struct {
	Name string
	Fn   func(ctx context.Context, targets venues.Targets) (venues.Response, error)
}

// ID implements Source.
func (f Func) ID() string { return f.Name }

// Query implements Source.
func (f Func) Query(ctx context.Context, targets venues.Targets) (venues.Response, error) {
	return f.Fn(ctx, targets)
}
