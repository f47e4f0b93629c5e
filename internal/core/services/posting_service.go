package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
	"github.com/bizbooks/ledgercore/internal/core/rules"
	"github.com/bizbooks/ledgercore/internal/dto"
	"github.com/bizbooks/ledgercore/internal/logging"
	"github.com/bizbooks/ledgercore/internal/tenant"
	"github.com/bizbooks/ledgercore/internal/utils/accounting"
)

// postingService is the only call path that creates or reverses journal
// entries. It validates balance before any write, enforces at-most-once
// posting per source document, and never mutates the triggering document.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	tenantRepo  portsrepo.TenantRepositoryFacade
	resolver    portssvc.GLResolverSvcFacade
	validate    *validator.Validate
}

// NewPostingService creates a new PostingService.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, tenantRepo portsrepo.TenantRepositoryFacade, resolver portssvc.GLResolverSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		tenantRepo:  tenantRepo,
		resolver:    resolver,
		validate:    validator.New(),
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Post executes a posting rule and persists the resulting entry.
func (s *postingService) Post(ctx context.Context, rule rules.PostingRule, userID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}

	doc := rule.Document()
	if err := s.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if doc.DocTenantID() != tenantID {
		logger.Error("Source document tenant does not match bound tenant",
			slog.String("document_tenant", doc.DocTenantID()),
			slog.String("bound_tenant", tenantID))
		return nil, fmt.Errorf("%w: document %s/%s belongs to tenant %s", apperrors.ErrTenantMismatch, doc.DocSourceType(), doc.DocSourceID(), doc.DocTenantID())
	}

	// At-most-once check. The partial unique index on active source
	// references backs this up against concurrent posting attempts.
	sourceType := doc.DocSourceType()
	sourceID := doc.DocSourceID()
	if _, err := s.journalRepo.FindActiveEntryBySource(ctx, sourceType, sourceID); err == nil {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, sourceType, sourceID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing entry: %w", err)
	}

	lines, err := rule.JournalLines(ctx)
	if err != nil {
		// Typically ErrGLAccountNotConfigured; surfaces before any write.
		return nil, err
	}

	entry, err := s.buildEntry(ctx, tenantID, doc.DocDate(), rule.Description(), rule.Reference(), lines, userID)
	if err != nil {
		return nil, err
	}
	entry.SourceType = &sourceType
	entry.SourceID = &sourceID
	entry.IsSystemGenerated = true

	if err := s.persistEntry(ctx, entry, lines); err != nil {
		return nil, err
	}

	logger.Info("Document posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("source_type", string(sourceType)),
		slog.String("source_id", sourceID))
	return entry, nil
}

// PostDocument builds the rule for the document and posts it.
func (s *postingService) PostDocument(ctx context.Context, doc domain.SourceDocument, userID string) (*domain.JournalEntry, error) {
	rule, err := rules.ForDocument(doc, s.resolver)
	if err != nil {
		return nil, err
	}
	return s.Post(ctx, rule, userID)
}

// PostManual persists a user-authored balanced entry without a source reference.
func (s *postingService) PostManual(ctx context.Context, req dto.CreateManualEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}

	entry, err := s.buildEntry(ctx, tenantID, req.EntryDate, req.Description, req.ReferenceNumber, lines, userID)
	if err != nil {
		return nil, err
	}
	entry.IsSystemGenerated = false

	if err := s.persistEntry(ctx, entry, lines); err != nil {
		return nil, err
	}

	logger.Info("Manual entry posted", slog.String("entry_id", entry.EntryID))
	return entry, nil
}

// buildEntry validates the lines and assembles an unsaved entry header.
// Balance is checked here, before anything touches the store.
func (s *postingService) buildEntry(ctx context.Context, tenantID string, entryDate time.Time, description, reference string, lines []domain.JournalLine, userID string) (*domain.JournalEntry, error) {
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, err
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, err
	}
	if err := s.checkAccountsBelongToTenant(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	t, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant %s: %w", tenantID, err)
	}

	now := time.Now().UTC()
	entry, err := domain.NewJournalEntry(tenantID, uuid.NewString(), entryDate, description, userID, now)
	if err != nil {
		return nil, err
	}
	entry.ReferenceNumber = reference
	entry.CurrencyCode = t.DefaultCurrencyCode
	return &entry, nil
}

// checkAccountsBelongToTenant verifies every referenced account exists in
// the bound tenant's chart and is active. The account repository is
// tenant-scoped, so a cross-tenant account id simply does not resolve.
func (s *postingService) checkAccountsBelongToTenant(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, id := range accountIDs {
		account, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: account %s not found in tenant's chart", apperrors.ErrNotFound, id)
		}
		if account.TenantID != tenantID {
			return fmt.Errorf("%w: account %s", apperrors.ErrTenantMismatch, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// persistEntry stamps ids and audit data on the lines and saves the
// entry atomically.
func (s *postingService) persistEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error {
	logger := logging.FromCtx(ctx)

	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
		lines[i].AuditFields = entry.AuditFields
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPosted) {
			// Lost a race with a concurrent post of the same document.
			return err
		}
		logger.Error("Failed to save journal entry", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	entry.Lines = lines
	return nil
}

// Reverse creates a compensating entry and marks the original reversed.
func (s *postingService) Reverse(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s reverses entry %s", apperrors.ErrCannotReverseReversal, entryID, *original.OriginalEntryID)
	}
	if original.Status == domain.EntryReversed {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	description := fmt.Sprintf("Reversal of: %s", original.Description)
	reversing, err := domain.NewJournalEntry(tenantID, uuid.NewString(), original.EntryDate, description, userID, now)
	if err != nil {
		return nil, err
	}
	reversing.OriginalEntryID = &original.EntryID
	reversing.ReversalReason = reason
	reversing.ReferenceNumber = original.ReferenceNumber
	reversing.CurrencyCode = original.CurrencyCode
	reversing.IsSystemGenerated = true
	// The reversing entry carries no source reference of its own; the
	// original's active-source slot frees up, so the document can be
	// posted again after an explicit reversal.

	reversedLines := accounting.SwapSides(originalLines)
	for i := range reversedLines {
		reversedLines[i].LineID = uuid.NewString()
		reversedLines[i].EntryID = reversing.EntryID
		reversedLines[i].AuditFields = reversing.AuditFields
	}

	if err := s.journalRepo.SaveReversal(ctx, reversing, reversedLines, original.EntryID, userID, now); err != nil {
		logger.Error("Failed to save reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversal of entry %s: %w", entryID, err)
	}

	logger.Info("Entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversing_entry_id", reversing.EntryID))
	reversing.Lines = reversedLines
	return &reversing, nil
}

// GetEntryByID retrieves an entry with its lines within the bound tenant.
func (s *postingService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of the bound tenant's entries.
func (s *postingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := logging.FromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	var linesMap map[string][]domain.JournalLine
	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, entry := range entries {
			entryIDs[i] = entry.EntryID
		}
		linesMap, err = s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			logger.Warn("Failed to fetch lines for entries", slog.String("error", err.Error()))
			// Continue without lines rather than failing the whole request.
		}
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i, entry := range entries {
		if linesMap != nil {
			entry.Lines = linesMap[entry.EntryID]
		}
		responses[i] = dto.ToJournalEntryResponse(&entry)
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}
