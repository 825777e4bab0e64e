package repositories

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// CycleReader defines read operations for accounting cycle step data
type CycleReader interface {
	// ListSteps retrieves the ten cycle steps for a period, ordered by step number.
	ListSteps(ctx context.Context, periodID string) ([]domain.CycleStep, error)
}

// CycleWriter defines write operations for accounting cycle step data
type CycleWriter interface {
	// InitSteps creates the pending step rows for a newly opened period.
	InitSteps(ctx context.Context, periodID string, steps []domain.CycleStep) error

	// UpdateStep sets the status and note of one step.
	UpdateStep(ctx context.Context, step domain.CycleStep) error
}

// CycleRepositoryFacade combines all cycle-step repository interfaces
type CycleRepositoryFacade interface {
	CycleReader
	CycleWriter
}
