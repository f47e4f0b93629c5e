package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	"github.com/bizbooks/ledgercore/internal/models"
	"github.com/bizbooks/ledgercore/internal/tenant"
	"github.com/bizbooks/ledgercore/internal/utils/mapping"
	"github.com/bizbooks/ledgercore/internal/utils/pagination"
)

const accountColumns = `account_id, tenant_id, code, name, account_type, sub_type, is_system, is_active, description, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository stores chart-of-accounts data. Every operation is
// scoped to the tenant bound on the context; an unbound context fails
// with apperrors.ErrTenantRequired before any query runs.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.SubType,
		&m.IsSystem,
		&m.IsActive,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. The account's tenant must match the
// bound tenant; the write never falls back to an implicit tenant.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.ChartOfAccount) error {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return err
	}
	if account.TenantID != tenantID {
		return fmt.Errorf("%w: account %s", apperrors.ErrTenantMismatch, account.AccountID)
	}

	model := mapping.ToModelAccount(account)
	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.Pool.Exec(ctx, query,
		model.AccountID,
		model.TenantID,
		model.Code,
		model.Name,
		model.AccountType,
		model.SubType,
		model.IsSystem,
		model.IsActive,
		model.Description,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: account code %s already exists for this tenant", apperrors.ErrDuplicate, model.Code)
		}
		return apperrors.NewAppError(500, "failed to save account "+model.AccountID, err)
	}
	return nil
}

// SaveAccounts inserts a batch of accounts in one transaction. Used by
// default-chart seeding at tenant provisioning.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.ChartOfAccount) error {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		if account.TenantID != tenantID {
			return fmt.Errorf("%w: account %s", apperrors.ErrTenantMismatch, account.AccountID)
		}
		model := mapping.ToModelAccount(account)
		batch.Queue(query,
			model.AccountID,
			model.TenantID,
			model.Code,
			model.Name,
			model.AccountType,
			model.SubType,
			model.IsSystem,
			model.IsActive,
			model.Description,
			model.CreatedAt,
			model.CreatedBy,
			model.LastUpdatedAt,
			model.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range accounts {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			if isUniqueViolation(err, "") {
				return fmt.Errorf("%w: duplicate account code in batch", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to save account batch", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close account batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account by id within the bound tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE tenant_id = $1 AND account_id = $2;`
	model, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}

	account := mapping.ToDomainAccount(model)
	return &account, nil
}

// FindAccountByCode retrieves an account by chart code within the bound tenant.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE tenant_id = $1 AND code = $2;`
	model, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
		}
		return nil, apperrors.NewAppError(500, "failed to find account code "+code, err)
	}

	account := mapping.ToDomainAccount(model)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by id within the
// bound tenant. Missing ids are simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return map[string]domain.ChartOfAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by ids", err)
	}
	defer rows.Close()

	result := make(map[string]domain.ChartOfAccount, len(accountIDs))
	for rows.Next() {
		model, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[model.AccountID] = mapping.ToDomainAccount(model)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return result, nil
}

// ListAccounts retrieves a paginated list of the bound tenant's accounts
// ordered by code, using token-based pagination.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.ChartOfAccount, *string, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	args := []interface{}{tenantID}
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE tenant_id = $1`
	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 1 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND code > $2`
		args = append(args, fields[0])
	}
	query += fmt.Sprintf(` ORDER BY code ASC LIMIT $%d;`, len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.ChartOfAccount, 0, fetchLimit)
	for rows.Next() {
		model, err := scanAccount(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(model))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}

	var token *string
	if len(accounts) > limit {
		accounts = accounts[:limit]
		t := pagination.EncodeMultiFieldToken(accounts[len(accounts)-1].Code)
		token = &t
	}
	return accounts, token, nil
}

// UpdateAccount updates mutable account fields within the bound tenant.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return err
	}

	model := mapping.ToModelAccount(account)
	query := `
		UPDATE chart_of_accounts
		SET name = $3, sub_type = $4, description = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		tenantID,
		model.AccountID,
		model.Name,
		model.SubType,
		model.Description,
		model.IsActive,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+model.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, model.AccountID)
	}
	return nil
}

// HasJournalLines reports whether any journal line references the account.
func (r *PgxAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	if _, err := tenant.MustID(ctx); err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal references for account "+accountID, err)
	}
	return exists, nil
}
