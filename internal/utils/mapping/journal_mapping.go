package mapping

import (
	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	var sourceType *string
	if d.SourceType != nil {
		st := string(*d.SourceType)
		sourceType = &st
	}
	return models.JournalEntry{
		EntryID:           d.EntryID,
		TenantID:          d.TenantID,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		ReferenceNumber:   d.ReferenceNumber,
		CurrencyCode:      d.CurrencyCode,
		SourceType:        sourceType,
		SourceID:          d.SourceID,
		IsSystemGenerated: d.IsSystemGenerated,
		Status:            models.EntryStatus(d.Status),
		PostedAt:          d.PostedAt,
		OriginalEntryID:   d.OriginalEntryID,
		ReversingEntryID:  d.ReversingEntryID,
		ReversalReason:    d.ReversalReason,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	var sourceType *domain.SourceType
	if m.SourceType != nil {
		st := domain.SourceType(*m.SourceType)
		sourceType = &st
	}
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		TenantID:          m.TenantID,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		ReferenceNumber:   m.ReferenceNumber,
		CurrencyCode:      m.CurrencyCode,
		SourceType:        sourceType,
		SourceID:          m.SourceID,
		IsSystemGenerated: m.IsSystemGenerated,
		Status:            domain.EntryStatus(m.Status),
		PostedAt:          m.PostedAt,
		OriginalEntryID:   m.OriginalEntryID,
		ReversingEntryID:  m.ReversingEntryID,
		ReversalReason:    m.ReversalReason,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
