package mapping

import (
	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/models"
)

// ToModelAccount converts a domain ChartOfAccount to a model Account
func ToModelAccount(d domain.ChartOfAccount) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		SubType:     d.SubType,
		IsSystem:    d.IsSystem,
		IsActive:    d.IsActive,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain ChartOfAccount
func ToDomainAccount(m models.Account) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		SubType:     m.SubType,
		IsSystem:    m.IsSystem,
		IsActive:    m.IsActive,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
