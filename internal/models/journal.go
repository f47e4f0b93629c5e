package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents one journal entry row. SourceType and SourceID
// form the polymorphic reference to the triggering document and are null
// for manual entries and reversing entries.
type JournalEntry struct {
	EntryID           string      `db:"entry_id"`
	TenantID          string      `db:"tenant_id"`
	EntryDate         time.Time   `db:"entry_date"`
	Description       string      `db:"description"`
	ReferenceNumber   string      `db:"reference_number"`
	CurrencyCode      string      `db:"currency_code"`
	SourceType        *string     `db:"source_type"`
	SourceID          *string     `db:"source_id"`
	IsSystemGenerated bool        `db:"is_system_generated"`
	Status            EntryStatus `db:"status"`
	PostedAt          time.Time   `db:"posted_at"`
	OriginalEntryID   *string     `db:"original_entry_id"`
	ReversingEntryID  *string     `db:"reversing_entry_id"`
	ReversalReason    string      `db:"reversal_reason"`
	AuditFields
}

// JournalLine represents one journal line row. The table carries a CHECK
// constraint keeping exactly one of debit and credit positive.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	LineOrder   int             `db:"line_order"`
	AuditFields
}
