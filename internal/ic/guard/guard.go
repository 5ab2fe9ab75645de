// Package guard holds access checks run before a message is handled.
package guard

import (
	"context"
	"slices"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/ic/host"
	"github.com/yndnr/canikit-go/pkg/principal"
)

// IsController fails unless the caller controls the running canister.
func IsController(ctx context.Context, rt host.Runtime) error {
	if !rt.IsController(host.Caller(ctx)) {
		return forbidden("Caller is not a controller", "is_controller")
	}
	return nil
}

// IsNotAnonymous fails for the anonymous caller.
func IsNotAnonymous(ctx context.Context) error {
	if host.Caller(ctx).IsAnonymous() {
		return forbidden("Caller is anonymous", "is_not_anonymous")
	}
	return nil
}

// IsAdmin fails unless the caller is one of admins.
func IsAdmin(ctx context.Context, admins []principal.Principal) error {
	if !slices.ContainsFunc(admins, host.Caller(ctx).Equal) {
		return forbidden("Caller is not an admin", "is_admin")
	}
	return nil
}

// All runs checks in order and returns the first failure.
func All(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func forbidden(msg, method string) error {
	return domain.Forbidden(msg).WithMethod(method).WithSource(domain.Source)
}
