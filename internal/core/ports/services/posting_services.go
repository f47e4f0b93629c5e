package services

import (
	"context"

	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/core/rules"
	"github.com/bizbooks/ledgercore/internal/dto"
)

// PostingSvcFacade is the only call path allowed to create or reverse a
// journal entry. Both operations run synchronously and atomically; on
// any failure nothing is persisted. Neither mutates the source document.
type PostingSvcFacade interface {
	// Post executes a posting rule and persists the resulting balanced
	// entry, tagged with the rule's source document. At most one active
	// entry may exist per document; a second attempt fails with
	// apperrors.ErrAlreadyPosted.
	Post(ctx context.Context, rule rules.PostingRule, userID string) (*domain.JournalEntry, error)

	// PostDocument builds the rule for the document and posts it.
	PostDocument(ctx context.Context, doc domain.SourceDocument, userID string) (*domain.JournalEntry, error)

	// PostManual persists a user-authored balanced entry with no source
	// document reference.
	PostManual(ctx context.Context, req dto.CreateManualEntryRequest, userID string) (*domain.JournalEntry, error)

	// Reverse creates a compensating entry with every line's debit and
	// credit swapped, marks the original reversed and links the two.
	// Reversing a reversal is rejected.
	Reverse(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines within the bound tenant.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of the bound tenant's entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
