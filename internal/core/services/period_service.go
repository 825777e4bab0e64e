package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

var (
	ErrPeriodDatesInverted = errors.New("period end date precedes its start date")
	ErrPeriodOverlap       = errors.New("period overlaps an existing period")
)

// periodService implements the PeriodSvcFacade interface
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
	cycleRepo  portsrepo.CycleRepositoryFacade
}

// NewPeriodService creates a new period service. The cycle repository seeds
// the ten-step checklist for every period opened.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, cycleRepo portsrepo.CycleRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo: periodRepo,
		cycleRepo:  cycleRepo,
	}
}

// Ensure periodService implements the PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s to %s", ErrPeriodDatesInverted, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	// Overlap check: a date can resolve to at most one period.
	for _, probe := range []time.Time{req.StartDate, req.EndDate} {
		existing, err := s.periodRepo.FindPeriodForDate(ctx, probe)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check period overlap", slog.Time("date", probe))
			return nil, fmt.Errorf("failed to check period overlap: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s overlaps %s", ErrPeriodOverlap, req.Name, existing.Name)
		}
	}

	now := time.Now().UTC()
	period := domain.Period{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: false,
		IsClosed:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save period", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	// Seed the cycle checklist for the fresh period.
	steps := make([]domain.CycleStep, 0, len(domain.CycleStepNames))
	for step := domain.StepAnalyze; step <= domain.StepScheduleReversal; step++ {
		steps = append(steps, domain.CycleStep{
			PeriodID:  period.PeriodID,
			Step:      step,
			Name:      domain.CycleStepNames[step],
			Status:    domain.StepPending,
			UpdatedAt: now,
		})
	}
	if err := s.cycleRepo.InitSteps(ctx, period.PeriodID, steps); err != nil {
		s.LogError(ctx, err, "Failed to seed cycle steps", slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to seed cycle steps: %w", err)
	}

	if req.SetAsCurrent {
		if err := s.periodRepo.SetCurrentPeriod(ctx, period.PeriodID, creatorUserID); err != nil {
			s.LogError(ctx, err, "Failed to mark period current", slog.String("period_id", period.PeriodID))
			return nil, fmt.Errorf("failed to mark period current: %w", err)
		}
		period.IsCurrent = true
	}

	s.LogInfo(ctx, "Period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period", slog.String("period_id", periodID))
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

func (s *periodService) GetCurrentPeriod(ctx context.Context) (*domain.Period, error) {
	period, err := s.periodRepo.FindCurrentPeriod(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find current period")
		}
		return nil, fmt.Errorf("failed to find current period: %w", err)
	}
	return period, nil
}

func (s *periodService) ResolvePeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve period for date", slog.Time("date", date))
		}
		return nil, fmt.Errorf("failed to resolve period for %s: %w", date.Format("2006-01-02"), err)
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods")
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

func (s *periodService) SetCurrentPeriod(ctx context.Context, periodID string, requestingUserID string) error {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.IsClosed {
		return fmt.Errorf("%w: period %s is closed", apperrors.ErrConflict, period.Name)
	}
	if err := s.periodRepo.SetCurrentPeriod(ctx, periodID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to set current period", slog.String("period_id", periodID))
		return fmt.Errorf("failed to set current period: %w", err)
	}
	s.LogInfo(ctx, "Current period changed", slog.String("period_id", periodID), slog.String("name", period.Name))
	return nil
}
