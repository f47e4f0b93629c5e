package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the pgx-backed repository set over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TenantRepo:  newPgxTenantRepository(pool),
		AccountRepo: newPgxAccountRepository(pool),
		JournalRepo: newPgxJournalRepository(pool),
	}
}
