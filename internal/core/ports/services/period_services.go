package services

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting period data
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific period by its ID.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// GetCurrentPeriod retrieves the period currently marked as active.
	GetCurrentPeriod(ctx context.Context) (*domain.Period, error)

	// ResolvePeriodForDate finds the period containing the given date.
	ResolvePeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error)

	// ListPeriods retrieves all periods.
	ListPeriods(ctx context.Context) ([]domain.Period, error)
}

// PeriodWriterSvc defines write operations for accounting period data
type PeriodWriterSvc interface {
	// CreatePeriod opens a new accounting period and seeds its cycle steps.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error)

	// SetCurrentPeriod marks a period as the current one.
	SetCurrentPeriod(ctx context.Context, periodID string, requestingUserID string) error
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
