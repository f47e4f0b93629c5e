package services

import (
	"context"

	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/dto"
)

// TenantReaderSvc defines read operations for tenant data.
type TenantReaderSvc interface {
	// GetTenantByID retrieves a tenant by id.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// GetGLSettings returns the bound tenant's role to account-code mapping.
	GetGLSettings(ctx context.Context) (map[string]string, error)
}

// TenantWriterSvc defines write operations for tenant data.
type TenantWriterSvc interface {
	// CreateTenant provisions a new tenant and seeds its default chart of accounts.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	// UpdateGLSettings replaces the bound tenant's role to account-code mapping.
	// Every referenced code must exist in the tenant's chart.
	UpdateGLSettings(ctx context.Context, req dto.UpdateGLSettingsRequest, userID string) error

	// DeactivateTenant marks a tenant inactive.
	DeactivateTenant(ctx context.Context, tenantID string, userID string) error
}

// TenantSvcFacade combines all tenant-related service interfaces.
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
}
