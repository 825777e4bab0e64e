package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest defines one debit or credit line of a new entry.
// Exactly one of Debit/Credit must be positive; the other must be zero.
type CreateLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes"`
}

// CreateEntryRequest defines the data needed to record a new journal entry.
type CreateEntryRequest struct {
	EntryDate   time.Time           `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description string              `json:"description" binding:"required"`
	EntryType   domain.EntryType    `json:"entryType" binding:"omitempty,entrytype"`
	Memo        string              `json:"memo"`
	DocumentRef string              `json:"documentRef"`
	ExternalRef string              `json:"externalRef"`
	SourceType  string              `json:"sourceType"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=1,dive"`

	// PostImmediately skips the draft stage and posts right after recording.
	PostImmediately bool `json:"postImmediately"`
	// ScheduleReverseOn queues a reversing schedule for the new entry. Only
	// valid for adjusting entries recorded with PostImmediately.
	ScheduleReverseOn *time.Time `json:"scheduleReverseOn" binding:"omitempty" time_format:"2006-01-02"`
}

// CorrectEntryRequest defines the replacement content for correcting a posted
// entry. The original is never mutated; a counter entry plus this replacement
// are appended instead.
type CorrectEntryRequest struct {
	EntryDate   time.Time           `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description string              `json:"description" binding:"required"`
	Memo        string              `json:"memo"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Status    *domain.EntryStatus `form:"status"`
	EntryType *domain.EntryType   `form:"entryType"`
	Limit     int                 `form:"limit,default=20"`
	NextToken *string             `form:"nextToken"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string             `json:"entryID"`
	EntryDate   time.Time          `json:"entryDate"`
	PeriodID    string             `json:"periodID"`
	Description string             `json:"description"`
	Status      domain.EntryStatus `json:"status"`
	EntryType   domain.EntryType   `json:"entryType"`
	Memo        string             `json:"memo,omitempty"`
	DocumentRef string             `json:"documentRef,omitempty"`
	ExternalRef string             `json:"externalRef,omitempty"`
	SourceType  string             `json:"sourceType,omitempty"`
	ReversalOf  *string            `json:"reversalOf,omitempty"`
	CounterOf   *string            `json:"counterOf,omitempty"`
	PostedAt    *time.Time         `json:"postedAt,omitempty"`
	PostedBy    string             `json:"postedBy,omitempty"`
	Lines       []LineResponse     `json:"lines"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ListEntriesResponse is the paginated entry listing payload.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// CorrectionResponse returns the pair of entries a correction appends.
type CorrectionResponse struct {
	CounterEntry     EntryResponse `json:"counterEntry"`
	ReplacementEntry EntryResponse `json:"replacementEntry"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse DTO.
func ToLineResponse(line *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:    line.LineID,
		AccountID: line.AccountID,
		Debit:     line.Debit,
		Credit:    line.Credit,
		Notes:     line.Notes,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = ToLineResponse(&line)
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate,
		PeriodID:    e.PeriodID,
		Description: e.Description,
		Status:      e.Status,
		EntryType:   e.EntryType,
		Memo:        e.Memo,
		DocumentRef: e.DocumentRef,
		ExternalRef: e.ExternalRef,
		SourceType:  e.SourceType,
		ReversalOf:  e.ReversalOf,
		CounterOf:   e.CounterOf,
		PostedAt:    e.PostedAt,
		PostedBy:    e.PostedBy,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToListEntriesResponse converts a page of domain entries plus its pagination
// token to the listing DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	res := ListEntriesResponse{
		Entries:   make([]EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i, e := range entries {
		res.Entries[i] = ToEntryResponse(&e)
	}
	return res
}
