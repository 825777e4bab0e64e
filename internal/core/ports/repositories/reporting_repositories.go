package repositories

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetAccountActivity retrieves per-account gross debit/credit aggregates
	// under the given filter. Sign conventions and statement derivation are
	// applied by the calling service, not here.
	GetAccountActivity(ctx context.Context, filter domain.ActivityFilter) ([]domain.AccountActivity, error)

	// GetCashEntries retrieves entries of the given status that touch the cash
	// account inside a date window, with their lines, for cash flow
	// classification.
	GetCashEntries(ctx context.Context, cashAccountID string, from, to time.Time, status domain.EntryStatus) ([]domain.JournalEntry, error)
}
