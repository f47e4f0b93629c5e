package dto

import (
	"time"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new ledger account.
type CreateAccountRequest struct {
	Code        string             `json:"code" validate:"required"`
	Name        string             `json:"name" validate:"required"`
	AccountType domain.AccountType `json:"accountType" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME COGS EXPENSE"`
	SubType     string             `json:"subType"`
	Description string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	SubType     *string `json:"subType"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ListAccountsParams holds pagination parameters for listing accounts.
type ListAccountsParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	SubType     string             `json:"subType"`
	IsSystem    bool               `json:"isSystem"`
	IsActive    bool               `json:"isActive"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ListAccountsResponse is the paginated account list payload.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToAccountResponse converts a domain.ChartOfAccount to AccountResponse.
func ToAccountResponse(acc *domain.ChartOfAccount) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		SubType:     acc.SubType,
		IsSystem:    acc.IsSystem,
		IsActive:    acc.IsActive,
		Description: acc.Description,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
}
