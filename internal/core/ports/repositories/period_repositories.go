package repositories

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data
type PeriodReader interface {
	// FindPeriodByID retrieves a specific period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// FindCurrentPeriod retrieves the period currently marked as active, if any.
	FindCurrentPeriod(ctx context.Context) (*domain.Period, error)

	// FindPeriodForDate retrieves the period whose date range contains the given date.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error)

	// ListPeriods retrieves all periods ordered by start date descending.
	ListPeriods(ctx context.Context) ([]domain.Period, error)
}

// PeriodWriter defines write operations for accounting period data
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.Period) error

	// SetCurrentPeriod marks the given period as current and clears the flag on all others.
	SetCurrentPeriod(ctx context.Context, periodID string, updatedBy string) error

	// ClosePeriod marks a period as closed.
	ClosePeriod(ctx context.Context, periodID string, updatedBy string, closedAt time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
