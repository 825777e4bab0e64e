package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/utils/accounting"
)

// trialBalanceService computes debit/credit balance listings from the
// reporting repository's gross aggregates.
type trialBalanceService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	periodRepo    portsrepo.PeriodRepositoryFacade
}

// NewTrialBalanceService creates a new trial balance service.
func NewTrialBalanceService(reportingRepo portsrepo.ReportingRepository, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.TrialBalanceService {
	return &trialBalanceService{
		reportingRepo: reportingRepo,
		periodRepo:    periodRepo,
	}
}

// Ensure trialBalanceService implements the TrialBalanceService interface
var _ portssvc.TrialBalanceService = (*trialBalanceService)(nil)

// ComputeTrialBalance aggregates activity under the filter. Defaults: posted
// entries only, temporary accounts included, scoped to the current period
// unless an explicit date window with ScopeByDateRange overrides it.
func (s *trialBalanceService) ComputeTrialBalance(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.TrialBalance, error) {
	if filter.StatusFilter == "" {
		filter.StatusFilter = domain.Posted
	}

	useDateWindow := filter.ScopeByDateRange && (filter.AsOfFrom != nil || filter.AsOfTo != nil)
	if !useDateWindow && filter.PeriodID == "" {
		current, err := s.periodRepo.FindCurrentPeriod(ctx)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no current period set and no explicit scope given", apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to resolve current period for trial balance")
			return nil, fmt.Errorf("failed to resolve current period: %w", err)
		}
		filter.PeriodID = current.PeriodID
	}

	activityFilter := domain.ActivityFilter{
		Status:        &filter.StatusFilter,
		PermanentOnly: !filter.IncludeTemporary,
	}
	if useDateWindow {
		activityFilter.From = filter.AsOfFrom
		activityFilter.To = filter.AsOfTo
	} else {
		activityFilter.PeriodID = filter.PeriodID
	}

	activities, err := s.reportingRepo.GetAccountActivity(ctx, activityFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity")
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	tb := domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(activities)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Filter:      filter,
	}
	for _, act := range activities {
		netDebit, netCredit := accounting.SplitNet(act.NetDebitBalance())
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:   act.AccountID,
			Code:        act.Code,
			Name:        act.Name,
			AccountType: act.AccountType,
			NormalSide:  act.AccountType.NormalSide(),
			NetDebit:    netDebit,
			NetCredit:   netCredit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(netDebit)
		tb.TotalCredit = tb.TotalCredit.Add(netCredit)
	}

	diff := tb.TotalDebit.Sub(tb.TotalCredit)
	tb.OutOfBalance = !domain.WithinTolerance(diff)
	if tb.OutOfBalance {
		// Reported as a diagnostic; the listing is returned regardless.
		s.LogInfo(ctx, "Trial balance totals out of balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()),
			slog.String("difference", diff.String()))
	}

	s.LogDebug(ctx, "Trial balance computed", slog.Int("rows", len(tb.Rows)), slog.String("period_id", filter.PeriodID))
	return &tb, nil
}
