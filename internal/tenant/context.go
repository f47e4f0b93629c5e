// Package tenant carries the identity of the tenant the current unit of
// work operates on. The binding lives on the context.Context of the
// request or job, never in package-level state, so concurrent units of
// work cannot observe each other's tenant and nothing needs resetting
// between reuses of a worker.
package tenant

import (
	"context"

	"github.com/bizbooks/ledgercore/internal/apperrors"
)

// contextKey is unexported to prevent collisions with other packages' keys.
type contextKey string

const tenantIDKey = contextKey("tenantID")

// WithID binds a tenant id to the context for the remainder of the unit of work.
func WithID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// ID returns the bound tenant id and whether one is bound.
// Background jobs and console entry points may legitimately run unbound;
// callers must not assume a tenant is always present.
func ID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tenantIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// MustID returns the bound tenant id or apperrors.ErrTenantRequired.
// Tenant-scoped operations call this first so that an unbound context
// fails closed instead of operating tenant-wide.
func MustID(ctx context.Context) (string, error) {
	id, ok := ID(ctx)
	if !ok {
		return "", apperrors.ErrTenantRequired
	}
	return id, nil
}

// Check reports whether a tenant is currently bound.
func Check(ctx context.Context) bool {
	_, ok := ID(ctx)
	return ok
}
