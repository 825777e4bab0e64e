package mapping

import (
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
// Lines are persisted separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		PeriodID:    d.PeriodID,
		Description: d.Description,
		Status:      string(d.Status),
		EntryType:   string(d.EntryType),
		Memo:        d.Memo,
		DocumentRef: d.DocumentRef,
		ExternalRef: d.ExternalRef,
		SourceType:  d.SourceType,
		ReversalOf:  d.ReversalOf,
		CounterOf:   d.CounterOf,
		PostedAt:    d.PostedAt,
		PostedBy:    d.PostedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		PeriodID:    m.PeriodID,
		Description: m.Description,
		Status:      domain.EntryStatus(m.Status),
		EntryType:   domain.EntryType(m.EntryType),
		Memo:        m.Memo,
		DocumentRef: m.DocumentRef,
		ExternalRef: m.ExternalRef,
		SourceType:  m.SourceType,
		ReversalOf:  m.ReversalOf,
		CounterOf:   m.CounterOf,
		PostedAt:    m.PostedAt,
		PostedBy:    m.PostedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts model entries to domain entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
		Notes:     d.Notes,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Notes:     m.Notes,
	}
}

// ToDomainJournalLineSlice converts model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
