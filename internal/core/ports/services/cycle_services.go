package services

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// CycleService defines operations for tracking the ten-step accounting cycle
type CycleService interface {
	// GetCycleStatus retrieves the step checklist of a period.
	GetCycleStatus(ctx context.Context, periodID string) ([]domain.CycleStep, error)

	// UpdateStep manually sets the status of one step.
	UpdateStep(ctx context.Context, periodID string, step int, req dto.UpdateCycleStepRequest, requestingUserID string) (*domain.CycleStep, error)

	// AdvanceTo marks the given step in progress and completes every earlier
	// step still pending.
	AdvanceTo(ctx context.Context, periodID string, step int, requestingUserID string) ([]domain.CycleStep, error)
}
