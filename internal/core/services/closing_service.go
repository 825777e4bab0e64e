package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// Default chart codes for the equity accounts the close folds into.
const (
	DefaultCapitalCode  = "301"
	DefaultDrawingsCode = "302"
)

// closingService runs period close: temporary accounts are zeroed into
// capital, drawings are folded in, and the period is sealed.
type closingService struct {
	BaseService
	periodRepo    portsrepo.PeriodRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	cycleRepo     portsrepo.CycleRepositoryFacade
	journalSvc    portssvc.JournalSvcFacade

	capitalCode  string
	drawingsCode string
}

// ClosingServiceOption is a functional option for configuring the closing service
type ClosingServiceOption func(*closingService)

// WithClosingAccountCodes overrides the chart codes of the capital and
// drawings accounts the close targets.
func WithClosingAccountCodes(capitalCode, drawingsCode string) ClosingServiceOption {
	return func(s *closingService) {
		s.capitalCode = capitalCode
		s.drawingsCode = drawingsCode
	}
}

// NewClosingService creates a new closing service.
func NewClosingService(periodRepo portsrepo.PeriodRepositoryFacade, reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, cycleRepo portsrepo.CycleRepositoryFacade, journalSvc portssvc.JournalSvcFacade, options ...ClosingServiceOption) portssvc.ClosingService {
	svc := &closingService{
		periodRepo:    periodRepo,
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
		cycleRepo:     cycleRepo,
		journalSvc:    journalSvc,
		capitalCode:   DefaultCapitalCode,
		drawingsCode:  DefaultDrawingsCode,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure closingService implements the ClosingService interface
var _ portssvc.ClosingService = (*closingService)(nil)

// closingPlan is the computed close before anything is written.
type closingPlan struct {
	period         *domain.Period
	capital        *domain.Account
	tempLines      []dto.CreateLineRequest
	drawingsLines  []dto.CreateLineRequest
	netIncome      decimal.Decimal
	drawingsClosed decimal.Decimal
	accountsTouched int
}

// computePlan derives the closing entries for a period without writing.
func (s *closingService) computePlan(ctx context.Context, periodID string) (*closingPlan, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	capital, err := s.accountRepo.FindAccountByCode(ctx, s.capitalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find capital account (code %s): %w", s.capitalCode, err)
	}

	status := domain.Posted
	// Reversing entries landing inside the period would otherwise distort the
	// temporary-account balances being zeroed out.
	activities, err := s.reportingRepo.GetAccountActivity(ctx, domain.ActivityFilter{
		PeriodID:         periodID,
		Status:           &status,
		ExcludeClosing:   true,
		ExcludeReversing: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate activity for close", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to aggregate activity: %w", err)
	}

	plan := &closingPlan{
		period:         period,
		capital:        capital,
		netIncome:      decimal.Zero,
		drawingsClosed: decimal.Zero,
	}

	// Zero each temporary account by a line on the opposite side of its net
	// balance. A revenue account dragged into a debit balance closes with a
	// credit line; the sign math needs no special case for it.
	tempNetTotal := decimal.Zero
	for _, act := range activities {
		net := act.NetDebitBalance()
		if !act.AccountType.IsTemporary() || net.IsZero() {
			continue
		}
		line := dto.CreateLineRequest{AccountID: act.AccountID, Notes: fmt.Sprintf("Close %s", act.Name)}
		if net.Sign() > 0 {
			line.Credit = net
		} else {
			line.Debit = net.Neg()
		}
		plan.tempLines = append(plan.tempLines, line)
		tempNetTotal = tempNetTotal.Add(net)
		plan.accountsTouched++
	}

	// tempNetTotal is expenses minus revenues; its negation is net income.
	plan.netIncome = tempNetTotal.Neg()
	if len(plan.tempLines) > 0 {
		capitalLine := dto.CreateLineRequest{AccountID: capital.AccountID, Notes: "Net income to capital"}
		if plan.netIncome.Sign() >= 0 {
			capitalLine.Credit = plan.netIncome
		} else {
			capitalLine.Debit = plan.netIncome.Neg()
		}
		if !plan.netIncome.IsZero() {
			plan.tempLines = append(plan.tempLines, capitalLine)
		}
	}

	// Drawings close into capital with their own entry.
	drawings, err := s.accountRepo.FindAccountByCode(ctx, s.drawingsCode)
	if err == nil {
		for _, act := range activities {
			if act.AccountID != drawings.AccountID {
				continue
			}
			net := act.NetDebitBalance()
			if net.IsZero() {
				break
			}
			plan.drawingsClosed = net
			if net.Sign() > 0 {
				plan.drawingsLines = []dto.CreateLineRequest{
					{AccountID: capital.AccountID, Debit: net, Notes: "Close drawings to capital"},
					{AccountID: drawings.AccountID, Credit: net, Notes: fmt.Sprintf("Close %s", act.Name)},
				}
			} else {
				plan.drawingsLines = []dto.CreateLineRequest{
					{AccountID: drawings.AccountID, Debit: net.Neg(), Notes: fmt.Sprintf("Close %s", act.Name)},
					{AccountID: capital.AccountID, Credit: net.Neg(), Notes: "Close drawings to capital"},
				}
			}
			plan.accountsTouched++
			break
		}
	}

	return plan, nil
}

// PreviewClose computes what ClosePeriod would post without writing anything.
func (s *closingService) PreviewClose(ctx context.Context, periodID string) (*domain.ClosingResult, error) {
	plan, err := s.computePlan(ctx, periodID)
	if err != nil {
		return nil, err
	}
	result := &domain.ClosingResult{
		PeriodID:        periodID,
		NetIncome:       plan.netIncome,
		DrawingsClosed:  plan.drawingsClosed,
		AlreadyClosed:   plan.period.IsClosed,
		AccountsTouched: plan.accountsTouched,
	}
	return result, nil
}

// ClosePeriod posts the closing entries and seals the period. Idempotent:
// closing an already closed period returns AlreadyClosed with no new entries.
func (s *closingService) ClosePeriod(ctx context.Context, periodID string, req dto.ClosePeriodRequest, requestingUserID string) (*domain.ClosingResult, error) {
	plan, err := s.computePlan(ctx, periodID)
	if err != nil {
		return nil, err
	}

	if plan.period.IsClosed {
		s.LogInfo(ctx, "Period already closed", slog.String("period_id", periodID))
		return &domain.ClosingResult{PeriodID: periodID, AlreadyClosed: true}, nil
	}

	if !plan.period.Contains(req.ClosingDate) {
		return nil, fmt.Errorf("%w: closing date %s is outside period %s", apperrors.ErrValidation, req.ClosingDate.Format("2006-01-02"), plan.period.Name)
	}

	// Open drafts mean unfinished bookwork; Force leaves them behind as
	// drafts, permanently excluded from the closed period's figures.
	counts, err := s.journalRepo.CountEntriesByStatus(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count entries for close readiness", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to check close readiness: %w", err)
	}
	if drafts := counts[domain.Draft]; drafts > 0 && !req.Force {
		return nil, fmt.Errorf("%w: %d draft entries remain in period %s", apperrors.ErrPeriodNotReady, drafts, plan.period.Name)
	}

	result := &domain.ClosingResult{
		PeriodID:        periodID,
		NetIncome:       plan.netIncome,
		DrawingsClosed:  plan.drawingsClosed,
		AccountsTouched: plan.accountsTouched,
	}

	postClosing := func(description string, lines []dto.CreateLineRequest) error {
		if len(lines) == 0 {
			return nil
		}
		draft, err := s.journalSvc.RecordEntry(ctx, dto.CreateEntryRequest{
			EntryDate:   req.ClosingDate,
			Description: description,
			EntryType:   domain.EntryTypeClosing,
			Lines:       lines,
		}, requestingUserID)
		if err != nil {
			return err
		}
		posted, err := s.journalSvc.PostEntry(ctx, draft.EntryID, requestingUserID)
		if err != nil {
			return err
		}
		result.ClosingEntries = append(result.ClosingEntries, *posted)
		return nil
	}

	if err := postClosing(fmt.Sprintf("Close revenue and expense accounts (%s)", plan.period.Name), plan.tempLines); err != nil {
		s.LogError(ctx, err, "Failed to post income close", slog.String("period_id", periodID))
		return nil, err
	}
	if err := postClosing(fmt.Sprintf("Close drawings (%s)", plan.period.Name), plan.drawingsLines); err != nil {
		s.LogError(ctx, err, "Failed to post drawings close", slog.String("period_id", periodID))
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to seal period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to seal period: %w", err)
	}

	if err := s.cycleRepo.UpdateStep(ctx, domain.CycleStep{
		PeriodID:  periodID,
		Step:      domain.StepClose,
		Name:      domain.CycleStepNames[domain.StepClose],
		Status:    domain.StepCompleted,
		Note:      fmt.Sprintf("Closed with net income %s", plan.netIncome.String()),
		UpdatedAt: now,
	}); err != nil {
		// Step tracking is advisory; the close itself already succeeded.
		s.LogError(ctx, err, "Failed to mark closing step complete", slog.String("period_id", periodID))
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("period_id", periodID),
		slog.String("net_income", plan.netIncome.String()),
		slog.Int("closing_entries", len(result.ClosingEntries)))
	return result, nil
}
