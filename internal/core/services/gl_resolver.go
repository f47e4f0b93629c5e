package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
	"github.com/bizbooks/ledgercore/internal/core/rules"
	"github.com/bizbooks/ledgercore/internal/tenant"
)

// glResolverService maps semantic account roles to concrete accounts.
// Hard-coding chart codes inside the posting rules would break tenants
// with customized charts; this indirection lets every tenant remap a role
// to whatever code fits while the rules keep using roles plus a default.
type glResolverService struct {
	tenantRepo  portsrepo.TenantRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewGLResolverService creates a new GL account resolver.
func NewGLResolverService(tenantRepo portsrepo.TenantRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.GLResolverSvcFacade {
	return &glResolverService{tenantRepo: tenantRepo, accountRepo: accountRepo}
}

var _ portssvc.GLResolverSvcFacade = (*glResolverService)(nil)
var _ rules.Resolver = (*glResolverService)(nil)

// ResolveCode maps a role to an account code using the bound tenant's GL
// settings, falling back to fallbackCode when the role is unconfigured.
// Returns "" when neither exists.
func (s *glResolverService) ResolveCode(ctx context.Context, role string, fallbackCode string) (string, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return "", err
	}
	t, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("failed to load tenant %s for role resolution: %w", tenantID, err)
	}
	if code := t.GLAccountCode(role); code != "" {
		return code, nil
	}
	return fallbackCode, nil
}

// GetAccountID resolves a role to an account id in the bound tenant's chart.
// Inactive and missing accounts both resolve to "" so posting fails closed.
func (s *glResolverService) GetAccountID(ctx context.Context, role string, fallbackCode string) (string, error) {
	code, err := s.ResolveCode(ctx, role, fallbackCode)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", nil
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up account code %s: %w", code, err)
	}
	if !account.IsActive {
		return "", nil
	}
	return account.AccountID, nil
}

// ValidateConfiguration returns the subset of roles that resolve to nothing.
func (s *glResolverService) ValidateConfiguration(ctx context.Context, roles []string) ([]string, error) {
	missing := make([]string, 0)
	for _, role := range roles {
		accountID, err := s.GetAccountID(ctx, role, rules.FallbackCode(role))
		if err != nil {
			return nil, err
		}
		if accountID == "" {
			missing = append(missing, role)
		}
	}
	return missing, nil
}
