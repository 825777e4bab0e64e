package services

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// EntryReaderSvc defines read operations for journal entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for journal entry data
type EntryWriterSvc interface {
	// RecordEntry validates and persists a new entry as a draft.
	RecordEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostEntry transitions a balanced draft to posted, making it immutable.
	PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// VoidEntry voids a draft. Posted entries cannot be voided.
	VoidEntry(ctx context.Context, entryID string, requestingUserID string) error

	// CorrectEntry appends a counter entry neutralizing a posted entry plus a
	// replacement with the corrected content. The original is never mutated.
	CorrectEntry(ctx context.Context, entryID string, req dto.CorrectEntryRequest, requestingUserID string) (*domain.JournalEntry, *domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
