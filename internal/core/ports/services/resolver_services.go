package services

import "context"

// GLResolverSvcFacade translates semantic account roles into concrete
// accounts using the bound tenant's GL settings with hard-coded fallbacks.
type GLResolverSvcFacade interface {
	// ResolveCode maps a role to an account code. Returns the tenant's
	// configured code, the fallback when unconfigured, or "" when neither exists.
	ResolveCode(ctx context.Context, role string, fallbackCode string) (string, error)

	// GetAccountID resolves a role to an account id in the bound tenant's
	// chart. Returns "" when no code resolves or the code is not in the chart.
	GetAccountID(ctx context.Context, role string, fallbackCode string) (string, error)

	// ValidateConfiguration returns the subset of roles that resolve to
	// nothing; used as a pre-flight check before posting.
	ValidateConfiguration(ctx context.Context, roles []string) ([]string, error)
}
