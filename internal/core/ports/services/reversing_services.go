package services

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// ReversingReaderSvc defines read operations for the reversal queue
type ReversingReaderSvc interface {
	// GetScheduleByID retrieves a specific schedule.
	GetScheduleByID(ctx context.Context, scheduleID string) (*domain.ReversingSchedule, error)

	// ListOpenSchedules retrieves schedules not yet processed.
	ListOpenSchedules(ctx context.Context) ([]domain.ReversingSchedule, error)

	// GetReversingReport builds the queue report with due-date countdowns.
	GetReversingReport(ctx context.Context, asOf time.Time) ([]domain.ReversingReportRow, error)
}

// ReversingWriterSvc defines write operations for the reversal queue
type ReversingWriterSvc interface {
	// ScheduleReversal queues a posted adjusting entry for automatic mirror
	// reversal on its reverse date.
	ScheduleReversal(ctx context.Context, req dto.ScheduleReversalRequest, requestingUserID string) (*domain.ReversingSchedule, error)

	// ApproveSchedule clears the approval gate of a schedule that requires it.
	ApproveSchedule(ctx context.Context, scheduleID string, approverUserID string) (*domain.ReversingSchedule, error)

	// ProcessDue walks the queue as of the given date, posting mirror reversal
	// entries for approved due schedules and flagging missed deadlines overdue.
	ProcessDue(ctx context.Context, asOf time.Time, requestingUserID string) (*dto.ProcessDueResponse, error)
}

// ReversingSvcFacade combines all reversal-queue service interfaces
type ReversingSvcFacade interface {
	ReversingReaderSvc
	ReversingWriterSvc
}
