package host

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/yndnr/canikit-go/internal/core/domain"
)

// Recorder receives the outcome of every external call.
type Recorder interface {
	ExternalCall(service, method string, err error)
}

// Gate paces calls to external canisters and records their outcome.
type Gate struct {
	limiter  *rate.Limiter
	recorder Recorder
}

// NewGate creates a gate allowing perSecond calls with the given burst.
// A non-positive perSecond disables pacing. rec may be nil.
func NewGate(perSecond float64, burst int, rec Recorder) *Gate {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Gate{limiter: rate.NewLimiter(limit, burst), recorder: rec}
}

// Unlimited returns a gate that never waits and records nothing.
func Unlimited() *Gate {
	return NewGate(0, 1, nil)
}

// Call waits for a slot, runs fn and records the result under service
// and method. A cancelled wait is reported as ServiceUnavailable.
func (g *Gate) Call(ctx context.Context, service, method string, fn func(context.Context) error) error {
	err := g.limiter.Wait(ctx)
	if err != nil {
		err = domain.ServiceUnavailable("Call to " + service + " was not admitted").
			WithMethod(method).
			WithSource(domain.Source).
			WithCause(err)
	} else {
		err = fn(ctx)
	}
	if g.recorder != nil {
		g.recorder.ExternalCall(service, method, err)
	}
	return err
}
