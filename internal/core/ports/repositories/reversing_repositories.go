package repositories

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// ReversingReader defines read operations for reversing schedule data
type ReversingReader interface {
	// FindScheduleByID retrieves a specific schedule by its unique identifier.
	FindScheduleByID(ctx context.Context, scheduleID string) (*domain.ReversingSchedule, error)

	// FindScheduleByEntryID retrieves the schedule attached to a journal entry, if any.
	FindScheduleByEntryID(ctx context.Context, entryID string) (*domain.ReversingSchedule, error)

	// ListOpenSchedules retrieves schedules not yet processed, ordered by reverse date.
	ListOpenSchedules(ctx context.Context) ([]domain.ReversingSchedule, error)

	// ListSchedulesDue retrieves unprocessed schedules whose reverse date is on or before asOf.
	ListSchedulesDue(ctx context.Context, asOf time.Time) ([]domain.ReversingSchedule, error)
}

// ReversingWriter defines write operations for reversing schedule data
type ReversingWriter interface {
	// SaveSchedule persists a new reversing schedule.
	SaveSchedule(ctx context.Context, schedule domain.ReversingSchedule) error

	// UpdateScheduleStatus transitions a schedule between workflow states and
	// records the generated reversal entry when the schedule is processed.
	UpdateScheduleStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus, reversalEntryID *string, updatedBy string, updatedAt time.Time) error

	// ApproveSchedule records approval of a schedule that requires it.
	ApproveSchedule(ctx context.Context, scheduleID string, approvedBy string, approvedAt time.Time) error
}

// ReversingRepositoryFacade combines all reversing-schedule repository interfaces
type ReversingRepositoryFacade interface {
	ReversingReader
	ReversingWriter
}

// ReversingRepositoryWithTx extends ReversingRepositoryFacade with transaction capabilities
type ReversingRepositoryWithTx interface {
	ReversingRepositoryFacade
	TransactionManager
}
