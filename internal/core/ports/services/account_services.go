package services

import (
	"context"

	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by id within the bound tenant.
	GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// GetAccountByCode retrieves an account by chart code within the bound tenant.
	GetAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)

	// ListAccounts retrieves a paginated list of the bound tenant's accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data.
type AccountWriterSvc interface {
	// CreateAccount creates a new account in the bound tenant's chart.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.ChartOfAccount, error)

	// UpdateAccount updates mutable fields of an account. System accounts
	// cannot be renamed.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartOfAccount, error)

	// DeactivateAccount marks an account inactive. Refused for system
	// accounts and for accounts referenced by journal lines.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// SeedDefaultChart creates the default chart of accounts for a tenant.
	// Runs unscoped with an explicit tenant id; used at provisioning time.
	SeedDefaultChart(ctx context.Context, tenantID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
