package repositories

import (
	"context"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// All reads are scoped to the tenant bound on the context.
type AccountReader interface {
	// FindAccountByID retrieves an account by id within the bound tenant.
	FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// FindAccountByCode retrieves an account by its chart code within the bound tenant.
	FindAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id within the bound tenant.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error)

	// ListAccounts retrieves a paginated list of the bound tenant's accounts
	// using token-based pagination.
	ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.ChartOfAccount, *string, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.ChartOfAccount) error

	// SaveAccounts persists a batch of new accounts (used by chart seeding).
	SaveAccounts(ctx context.Context, accounts []domain.ChartOfAccount) error

	// UpdateAccount updates mutable account fields (name, subtype, description, active flag).
	UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
