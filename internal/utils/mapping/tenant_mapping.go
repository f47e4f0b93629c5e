package mapping

import (
	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/models"
)

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:            d.TenantID,
		Name:                d.Name,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		GLSettings:          d.GLSettings,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	settings := m.GLSettings
	if settings == nil {
		settings = map[string]string{}
	}
	return domain.Tenant{
		TenantID:            m.TenantID,
		Name:                m.Name,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		GLSettings:          settings,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
