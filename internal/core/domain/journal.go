package domain

import (
	"time"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry. An entry is either
// posted or reversed; there is no persisted draft state in the ledger.
// Draft status belongs to the source document, not here.
type EntryStatus string

const (
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

// JournalEntry is one balanced, dated accounting event composed of two
// or more journal lines.
type JournalEntry struct {
	EntryID           string        `json:"entryID"`  // Primary Key (UUID)
	TenantID          string        `json:"tenantID"` // FK -> tenants.tenant_id (Not Null)
	EntryDate         time.Time     `json:"entryDate"`
	Description       string        `json:"description"`
	ReferenceNumber   string        `json:"referenceNumber"`
	CurrencyCode      string        `json:"currencyCode"`
	SourceType        *SourceType   `json:"sourceType"` // nil for manual entries
	SourceID          *string       `json:"sourceID"`   // nil for manual entries
	IsSystemGenerated bool          `json:"isSystemGenerated"`
	Status            EntryStatus   `json:"status"`
	PostedAt          time.Time     `json:"postedAt"`
	OriginalEntryID   *string       `json:"originalEntryID"`  // set on a reversing entry
	ReversingEntryID  *string       `json:"reversingEntryID"` // set on a reversed original
	ReversalReason    string        `json:"reversalReason"`
	Lines             []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// IsReversal reports whether this entry reverses another entry.
func (e JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}

// JournalLine is one debit or credit movement against one account within
// a journal entry. Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (UUID)
	EntryID     string          `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}

// IsDebit reports whether the line is a debit movement.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// DebitLine builds a pure-debit line against an account.
func DebitLine(accountID string, amount decimal.Decimal, description string) JournalLine {
	return JournalLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero, Description: description}
}

// CreditLine builds a pure-credit line against an account.
func CreditLine(accountID string, amount decimal.Decimal, description string) JournalLine {
	return JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount, Description: description}
}

// NewJournalEntry builds an unsaved entry header. The tenant id is a
// required explicit parameter rather than an implicit lifecycle hook.
func NewJournalEntry(tenantID, entryID string, entryDate time.Time, description string, userID string, at time.Time) (JournalEntry, error) {
	if tenantID == "" {
		return JournalEntry{}, apperrors.ErrTenantRequired
	}
	return JournalEntry{
		EntryID:     entryID,
		TenantID:    tenantID,
		EntryDate:   entryDate,
		Description: description,
		Status:      EntryPosted,
		PostedAt:    at,
		AuditFields: NewAuditFields(userID, at),
	}, nil
}
