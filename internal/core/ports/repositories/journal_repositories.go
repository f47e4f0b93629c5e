package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// EntryReader defines read operations for journal entry data.
// All reads are scoped to the tenant bound on the context.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry header by id within the bound tenant.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindActiveEntryBySource retrieves the non-reversed entry for a source
	// document, or apperrors.ErrNotFound if none exists.
	FindActiveEntryBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of the bound tenant's entries
	// using token-based pagination. Reversing entries are excluded unless
	// includeReversals is set.
	ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// LineReader defines read operations for journal line data.
type LineReader interface {
	// FindLinesByEntryID retrieves all lines of a journal entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry id.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry persists an entry and its lines as a single atomic unit.
	// A unique-constraint violation on the active source index is mapped
	// to apperrors.ErrAlreadyPosted.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveReversal persists the reversing entry with its lines and marks the
	// original entry reversed and linked, all in one database transaction.
	SaveReversal(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
// Atomicity of SaveEntry and SaveReversal is the implementation's contract;
// no transaction handle leaks into the service layer.
type JournalRepositoryFacade interface {
	EntryReader
	LineReader
	EntryWriter
}
