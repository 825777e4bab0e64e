package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry row.
type JournalEntry struct {
	EntryID     string     `db:"entry_id"`
	EntryDate   time.Time  `db:"entry_date"`
	PeriodID    string     `db:"period_id"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	EntryType   string     `db:"entry_type"`
	Memo        string     `db:"memo"`
	DocumentRef string     `db:"document_ref"`
	ExternalRef string     `db:"external_ref"`
	SourceType  string     `db:"source_type"`
	ReversalOf  *string    `db:"reversal_of"`
	CounterOf   *string    `db:"counter_of"`
	PostedAt    *time.Time `db:"posted_at"`
	PostedBy    string     `db:"posted_by"`
	AuditFields
}

// JournalLine represents one debit or credit leg of an entry.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Notes     string          `db:"notes"`
}
