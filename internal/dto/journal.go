package dto

import (
	"time"

	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ManualEntryLine is one line of a user-authored journal entry.
// Exactly one of Debit and Credit must be positive.
type ManualEntryLine struct {
	AccountID   string          `json:"accountID" validate:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateManualEntryRequest defines a manual bookkeeping entry.
type CreateManualEntryRequest struct {
	EntryDate       time.Time         `json:"entryDate" validate:"required"`
	Description     string            `json:"description" validate:"required"`
	ReferenceNumber string            `json:"referenceNumber"`
	Lines           []ManualEntryLine `json:"lines" validate:"required,min=2,dive"`
}

// ListEntriesParams holds pagination parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `json:"limit"`
	NextToken        *string `json:"nextToken"`
	IncludeReversals bool    `json:"includeReversals"`
	IncludeLines     bool    `json:"includeLines"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryDate         time.Time             `json:"entryDate"`
	Description       string                `json:"description"`
	ReferenceNumber   string                `json:"referenceNumber"`
	CurrencyCode      string                `json:"currencyCode"`
	SourceType        *domain.SourceType    `json:"sourceType,omitempty"`
	SourceID          *string               `json:"sourceID,omitempty"`
	IsSystemGenerated bool                  `json:"isSystemGenerated"`
	Status            domain.EntryStatus    `json:"status"`
	PostedAt          time.Time             `json:"postedAt"`
	OriginalEntryID   *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID  *string               `json:"reversingEntryID,omitempty"`
	ReversalReason    string                `json:"reversalReason,omitempty"`
	Lines             []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is the paginated entry list payload.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryDate:         e.EntryDate,
		Description:       e.Description,
		ReferenceNumber:   e.ReferenceNumber,
		CurrencyCode:      e.CurrencyCode,
		SourceType:        e.SourceType,
		SourceID:          e.SourceID,
		IsSystemGenerated: e.IsSystemGenerated,
		Status:            e.Status,
		PostedAt:          e.PostedAt,
		OriginalEntryID:   e.OriginalEntryID,
		ReversingEntryID:  e.ReversingEntryID,
		ReversalReason:    e.ReversalReason,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(l)
		}
	}
	return resp
}
