package offline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/quitvault/quitvault/internal/common"
)

// Applier applies a queued action to the remote side. DrainQueue retries
// whatever error it returns.
type Applier interface {
	Apply(ctx context.Context, action Action) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(ctx context.Context, action Action) error

func (f ApplierFunc) Apply(ctx context.Context, action Action) error {
	return f(ctx, action)
}

// SimulatedApplier fakes a remote backend: it sleeps for Latency and fails
// a FailureRate fraction of calls with common.ErrSyncFailed. It stands in
// for the real service this layer deliberately does not talk to.
type SimulatedApplier struct {
	Latency     time.Duration
	FailureRate float64
}

func (a *SimulatedApplier) Apply(ctx context.Context, _ Action) error {
	if a.Latency > 0 {
		select {
		case <-time.After(a.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if a.FailureRate > 0 && rand.Float64() < a.FailureRate {
		return common.ErrSyncFailed
	}
	return nil
}
