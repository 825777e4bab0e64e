package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// cycleService tracks the ten-step accounting cycle checklist per period.
type cycleService struct {
	BaseService
	cycleRepo  portsrepo.CycleRepositoryFacade
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewCycleService creates a new cycle service.
func NewCycleService(cycleRepo portsrepo.CycleRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.CycleService {
	return &cycleService{
		cycleRepo:  cycleRepo,
		periodRepo: periodRepo,
	}
}

// Ensure cycleService implements the CycleService interface
var _ portssvc.CycleService = (*cycleService)(nil)

func (s *cycleService) GetCycleStatus(ctx context.Context, periodID string) ([]domain.CycleStep, error) {
	if _, err := s.periodRepo.FindPeriodByID(ctx, periodID); err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	steps, err := s.cycleRepo.ListSteps(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cycle steps", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to list cycle steps: %w", err)
	}
	return steps, nil
}

func (s *cycleService) UpdateStep(ctx context.Context, periodID string, step int, req dto.UpdateCycleStepRequest, requestingUserID string) (*domain.CycleStep, error) {
	if step < domain.StepAnalyze || step > domain.StepScheduleReversal {
		return nil, fmt.Errorf("%w: step %d is out of range", apperrors.ErrValidation, step)
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown step status %q", apperrors.ErrValidation, req.Status)
	}
	if _, err := s.periodRepo.FindPeriodByID(ctx, periodID); err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	updated := domain.CycleStep{
		PeriodID:  periodID,
		Step:      step,
		Name:      domain.CycleStepNames[step],
		Status:    req.Status,
		Note:      req.Note,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.cycleRepo.UpdateStep(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update cycle step", slog.String("period_id", periodID), slog.Int("step", step))
		return nil, fmt.Errorf("failed to update cycle step: %w", err)
	}

	s.LogInfo(ctx, "Cycle step updated", slog.String("period_id", periodID), slog.Int("step", step), slog.String("status", string(req.Status)))
	return &updated, nil
}

// AdvanceTo marks the target step in progress and completes every earlier
// step still pending. Moving to step 5 from a fresh period completes 1-4 in
// one call; steps already completed are left alone.
func (s *cycleService) AdvanceTo(ctx context.Context, periodID string, step int, requestingUserID string) ([]domain.CycleStep, error) {
	if step < domain.StepAnalyze || step > domain.StepScheduleReversal {
		return nil, fmt.Errorf("%w: step %d is out of range", apperrors.ErrValidation, step)
	}

	steps, err := s.GetCycleStatus(ctx, periodID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range steps {
		cs := &steps[i]
		switch {
		case cs.Step < step && cs.Status != domain.StepCompleted:
			cs.Status = domain.StepCompleted
		case cs.Step == step && cs.Status == domain.StepPending:
			cs.Status = domain.StepInProgress
		default:
			continue
		}
		cs.UpdatedAt = now
		if err := s.cycleRepo.UpdateStep(ctx, *cs); err != nil {
			s.LogError(ctx, err, "Failed to advance cycle step", slog.String("period_id", periodID), slog.Int("step", cs.Step))
			return nil, fmt.Errorf("failed to advance cycle step %d: %w", cs.Step, err)
		}
	}

	s.LogInfo(ctx, "Cycle advanced", slog.String("period_id", periodID), slog.Int("to_step", step))
	return steps, nil
}
