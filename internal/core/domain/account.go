package domain

import (
	"fmt"
	"time"

	"github.com/bizbooks/ledgercore/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	COGS      AccountType = "COGS"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, COGS, Expense:
		return true
	}
	return false
}

// ChartOfAccount is one ledger account in a tenant's chart of accounts.
// Code is human-assigned and unique per tenant (e.g. "1200").
type ChartOfAccount struct {
	AccountID   string      `json:"accountID"` // Primary Key (UUID)
	TenantID    string      `json:"tenantID"`  // FK -> tenants.tenant_id (Not Null)
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	SubType     string      `json:"subType"`  // free-form classification
	IsSystem    bool        `json:"isSystem"` // protected from deletion/renaming
	IsActive    bool        `json:"isActive"`
	Description string      `json:"description"`
	AuditFields
}

// NewChartOfAccount builds an unsaved account. The tenant id is a required
// explicit parameter; accounts are never created without an owner.
func NewChartOfAccount(tenantID, accountID, code, name string, accountType AccountType, userID string, at time.Time) (ChartOfAccount, error) {
	if tenantID == "" {
		return ChartOfAccount{}, apperrors.ErrTenantRequired
	}
	if !ValidAccountType(accountType) {
		return ChartOfAccount{}, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	return ChartOfAccount{
		AccountID:   accountID,
		TenantID:    tenantID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		IsActive:    true,
		AuditFields: NewAuditFields(userID, at),
	}, nil
}
