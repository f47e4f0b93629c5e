package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const (
	entryColumns = `entry_id, tenant_id, entry_date, description, reference_number, currency_code, source_type, source_id, is_system_generated, status, posted_at, original_entry_id, reversing_entry_id, reversal_reason, created_at, created_by, last_updated_at, last_updated_by`
	lineColumns  = `line_id, entry_id, account_id, debit, credit, description, line_order, created_at, created_by, last_updated_at, last_updated_by`

	// Name of the partial unique index enforcing at most one POSTED entry
	// per (tenant_id, source_type, source_id). Must match the migration.
	activeSourceIndex = "uq_journal_entries_active_source"
)

// PgxJournalRepository stores journal entries and lines. All operations
// are scoped to the tenant bound on the context. SaveEntry and
// SaveReversal are atomic; the service layer never sees a transaction.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryDate,
		&m.Description,
		&m.ReferenceNumber,
		&m.CurrencyCode,
		&m.SourceType,
		&m.SourceID,
		&m.IsSystemGenerated,
		&m.Status,
		&m.PostedAt,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.ReversalReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.LineOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertEntry writes the entry header inside tx, mapping a violation of
// the active-source index to ErrAlreadyPosted.
func (r *PgxJournalRepository) insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	model := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		model.EntryID,
		model.TenantID,
		model.EntryDate,
		model.Description,
		model.ReferenceNumber,
		model.CurrencyCode,
		model.SourceType,
		model.SourceID,
		model.IsSystemGenerated,
		model.Status,
		model.PostedAt,
		model.OriginalEntryID,
		model.ReversingEntryID,
		model.ReversalReason,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, activeSourceIndex) {
			return fmt.Errorf("%w: source document already has an active entry", apperrors.ErrAlreadyPosted)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, model.EntryID)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+model.EntryID, err)
	}
	return nil
}

// insertLines batch-inserts the lines inside tx, preserving slice order
// via line_order.
func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for i, line := range lines {
		model := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			model.LineID,
			entryID,
			model.AccountID,
			model.Debit,
			model.Credit,
			model.Description,
			i,
			model.CreatedAt,
			model.CreatedBy,
			model.LastUpdatedAt,
			model.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return apperrors.NewAppError(500, "failed to insert journal lines for entry "+entryID, err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close journal line batch", err)
	}
	return nil
}

// SaveEntry persists an entry and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return err
	}
	if entry.TenantID != tenantID {
		return fmt.Errorf("%w: entry %s", apperrors.ErrTenantMismatch, entry.EntryID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, entry.EntryID, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversing entry with its lines and marks the
// original entry reversed and linked, all in one transaction. The status
// guard on the UPDATE closes the race where two reversals run at once.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return err
	}
	if reversing.TenantID != tenantID {
		return fmt.Errorf("%w: entry %s", apperrors.ErrTenantMismatch, reversing.EntryID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntry(ctx, tx, reversing); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, reversing.EntryID, lines); err != nil {
		return err
	}

	update := `
		UPDATE journal_entries
		SET status = $4, reversing_entry_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $3;
	`
	tag, err := tx.Exec(ctx, update,
		tenantID,
		originalEntryID,
		models.Posted,
		models.Reversed,
		reversing.EntryID,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, originalEntryID)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by id within the bound tenant.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`
	model, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(model)
	return &entry, nil
}

// FindActiveEntryBySource retrieves the non-reversed entry for a source
// document, or apperrors.ErrNotFound if none exists.
func (r *PgxJournalRepository) FindActiveEntryBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND source_type = $2 AND source_id = $3 AND status = $4;
	`
	model, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, string(sourceType), sourceID, models.Posted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active entry for %s %s", apperrors.ErrNotFound, sourceType, sourceID)
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by source", err)
	}

	entry := mapping.ToDomainJournalEntry(model)
	return &entry, nil
}

// ListEntries retrieves a paginated list of the bound tenant's entries,
// newest entry date first. Reversing entries (original_entry_id set) are
// excluded unless includeReversals is set.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	args := []interface{}{tenantID}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	if !includeReversals {
		query += ` AND original_entry_id IS NULL`
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		model, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(model))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// FindLinesByEntryID retrieves all lines of a journal entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	grouped, err := r.FindLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	return grouped[entryID], nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by
// entry id and ordered by line_order within each entry. Lines are joined
// against the entry table so a foreign tenant's ids resolve to nothing.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description, l.line_order, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.entry_id = ANY($2)
		ORDER BY l.entry_id, l.line_order;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		model, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		result[model.EntryID] = append(result[model.EntryID], mapping.ToDomainJournalLine(model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal line rows", err)
	}
	return result, nil
}
