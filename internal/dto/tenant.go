package dto

import (
	"time"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// CreateTenantRequest defines the data needed to provision a new tenant.
type CreateTenantRequest struct {
	Name                string            `json:"name" validate:"required"`
	DefaultCurrencyCode string            `json:"defaultCurrencyCode" validate:"required,len=3"`
	GLSettings          map[string]string `json:"glSettings"` // optional role -> code overrides
}

// UpdateGLSettingsRequest replaces the tenant's role to account-code mapping.
type UpdateGLSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID            string            `json:"tenantID"`
	Name                string            `json:"name"`
	DefaultCurrencyCode string            `json:"defaultCurrencyCode"`
	GLSettings          map[string]string `json:"glSettings"`
	IsActive            bool              `json:"isActive"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID,
		Name:                t.Name,
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		GLSettings:          t.GLSettings,
		IsActive:            t.IsActive,
		CreatedAt:           t.CreatedAt,
	}
}
