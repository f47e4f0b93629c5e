package repositories

import (
	"context"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// TenantReader defines read operations for tenant data.
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data.
type TenantWriter interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// UpdateGLSettings replaces the tenant's role to account-code mapping.
	UpdateGLSettings(ctx context.Context, tenantID string, settings map[string]string, updatedBy string) error

	// SetTenantActive toggles the tenant's active flag.
	SetTenantActive(ctx context.Context, tenantID string, active bool, updatedBy string) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces.
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
