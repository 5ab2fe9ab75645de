// Package host models the execution environment a canister runs in: its
// own id, the clock, the controller set and the caller of the current
// message.
package host

import (
	"context"
	"slices"
	"time"

	"github.com/yndnr/canikit-go/pkg/principal"
	"github.com/yndnr/canikit-go/pkg/timeutil"
)

// Runtime is the part of the host environment helpers depend on.
type Runtime interface {
	// Self returns the id of the running canister.
	Self() principal.Principal
	// Time returns the current time in nanoseconds since the epoch.
	Time() uint64
	// IsController reports whether p controls the running canister.
	IsController(p principal.Principal) bool
}

type callerKey struct{}

// WithCaller returns a context carrying the caller of the current message.
func WithCaller(ctx context.Context, p principal.Principal) context.Context {
	return context.WithValue(ctx, callerKey{}, p)
}

// Caller returns the caller stored in ctx, or the anonymous principal.
func Caller(ctx context.Context) principal.Principal {
	if p, ok := ctx.Value(callerKey{}).(principal.Principal); ok {
		return p
	}
	return principal.Anonymous()
}

// Static is a Runtime with a fixed identity and controller set.
type Static struct {
	ID          principal.Principal
	Controllers []principal.Principal
	// Clock overrides the wall clock when set.
	Clock func() uint64
}

// Self returns s.ID.
func (s *Static) Self() principal.Principal { return s.ID }

// Time returns Clock() or the wall clock.
func (s *Static) Time() uint64 {
	if s.Clock != nil {
		return s.Clock()
	}
	return timeutil.Nanos(time.Now())
}

// IsController reports whether p is in s.Controllers.
func (s *Static) IsController(p principal.Principal) bool {
	return slices.ContainsFunc(s.Controllers, p.Equal)
}
