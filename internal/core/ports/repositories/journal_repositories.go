package repositories

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries using token-based pagination.
	// Filters on status and entry type are optional; nil means no filter.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, status *domain.EntryStatus, entryType *domain.EntryType, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindEntriesByPeriod retrieves all entries dated inside the given period.
	FindEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error)

	// CountEntriesByStatus counts entries in a period per status.
	CountEntriesByStatus(ctx context.Context, periodID string) (map[domain.EntryStatus]int, error)

	// FindEntriesByTypeAndPeriod retrieves entries of the given type inside a period.
	FindEntriesByTypeAndPeriod(ctx context.Context, entryType domain.EntryType, periodID string) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists a journal entry together with its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus transitions an entry between lifecycle states.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, postedAt *time.Time, postedBy string, updatedAt time.Time) error

	// UpdateEntryLinks sets the reversal / counter linkage fields of an entry.
	UpdateEntryLinks(ctx context.Context, entryID string, reversalOf *string, counterOf *string, updatedBy string, updatedAt time.Time) error
}

// LineReader defines read operations for journal line data
type LineReader interface {
	// FindLinesByEntryID retrieves all lines associated with a single entry ID.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entry IDs, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated list of lines touching the given
	// account using token-based pagination.
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	EntryReader
	EntryWriter
	LineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
