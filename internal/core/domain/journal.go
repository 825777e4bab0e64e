package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// EntryType classifies a journal entry within the accounting cycle.
type EntryType string

const (
	EntryTypeNormal    EntryType = "NORMAL"
	EntryTypeAdjusting EntryType = "ADJUSTING"
	EntryTypeClosing   EntryType = "CLOSING"
	EntryTypeReversing EntryType = "REVERSING"
)

// IsValid reports whether t is one of the known entry types.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeNormal, EntryTypeAdjusting, EntryTypeClosing, EntryTypeReversing:
		return true
	}
	return false
}

// JournalEntry is a single balanced accounting event. Posted entries are
// immutable; corrections are recorded as counter entries, never edits.
type JournalEntry struct {
	EntryID     string      `json:"entryID"` // Primary key (UUID)
	EntryDate   time.Time   `json:"entryDate"`
	PeriodID    string      `json:"periodID"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	EntryType   EntryType   `json:"entryType"`
	Memo        string      `json:"memo"`
	DocumentRef string      `json:"documentRef"`
	ExternalRef string      `json:"externalRef"`
	SourceType  string      `json:"sourceType"`
	ReversalOf  *string     `json:"reversalOf"` // EntryID of the entry this one mirrors
	CounterOf   *string     `json:"counterOf"`  // EntryID of the posted entry this one corrects
	PostedAt    *time.Time  `json:"postedAt"`
	PostedBy    string      `json:"postedBy"`
	Lines       []JournalLine `json:"lines,omitempty"` // Loaded on demand
	AuditFields
}

// IsAdjusting reports whether the entry participates in the adjust stage.
func (e JournalEntry) IsAdjusting() bool { return e.EntryType == EntryTypeAdjusting }

// IsClosing reports whether the entry was produced by the closing processor.
func (e JournalEntry) IsClosing() bool { return e.EntryType == EntryTypeClosing }

// IsReversing reports whether the entry mirrors a scheduled reversal.
func (e JournalEntry) IsReversing() bool { return e.EntryType == EntryTypeReversing }

// JournalLine is one debit or credit leg of a journal entry. Exactly one of
// Debit/Credit is non-zero per line in practice.
type JournalLine struct {
	LineID    string          `json:"lineID"` // Primary key (UUID)
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes"`
}

// Mirror returns the debit/credit swap of the line, used for reversing and
// counter entries.
func (l JournalLine) Mirror() JournalLine {
	return JournalLine{
		AccountID: l.AccountID,
		Debit:     l.Credit,
		Credit:    l.Debit,
		Notes:     l.Notes,
	}
}

// TotalDebits sums the debit side of a set of lines.
func TotalDebits(lines []JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// TotalCredits sums the credit side of a set of lines.
func TotalCredits(lines []JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// AuditEvent is one append-only row of the engine's audit trail. Every
// posted or voided transition is logged.
type AuditEvent struct {
	EventID    string    `json:"eventID"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entityID"`
	Details    string    `json:"details"` // JSON payload
	PerformedBy string   `json:"performedBy"`
	OccurredAt time.Time `json:"occurredAt"`
}
