package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

var (
	ErrRequestAlreadyResolved = fmt.Errorf("%w: adjustment request is already resolved", apperrors.ErrConflict)
	ErrSuppliesOverCounted    = fmt.Errorf("%w: counted supplies exceed the balance on the books", apperrors.ErrValidation)
)

// adjustingService manages the adjust stage of the cycle: the request log
// kept during period review and the adjusting entries that settle it.
type adjustingService struct {
	BaseService
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	reportingRepo  portsrepo.ReportingRepository
	accountRepo    portsrepo.AccountRepositoryFacade
	periodRepo     portsrepo.PeriodRepositoryFacade
	journalSvc     portssvc.JournalSvcFacade
}

// NewAdjustingService creates a new adjusting service.
func NewAdjustingService(adjustmentRepo portsrepo.AdjustmentRepositoryFacade, reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, journalSvc portssvc.JournalSvcFacade) portssvc.AdjustingSvcFacade {
	return &adjustingService{
		adjustmentRepo: adjustmentRepo,
		reportingRepo:  reportingRepo,
		accountRepo:    accountRepo,
		periodRepo:     periodRepo,
		journalSvc:     journalSvc,
	}
}

// Ensure adjustingService implements the AdjustingSvcFacade interface
var _ portssvc.AdjustingSvcFacade = (*adjustingService)(nil)

func (s *adjustingService) ListAdjustmentRequests(ctx context.Context, periodID string) ([]domain.AdjustmentRequest, error) {
	requests, err := s.adjustmentRepo.ListRequestsByPeriod(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list adjustment requests", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to list adjustment requests: %w", err)
	}
	return requests, nil
}

func (s *adjustingService) LogAdjustmentRequest(ctx context.Context, req dto.CreateAdjustmentRequestRequest, requestingUserID string) (*domain.AdjustmentRequest, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, req.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", req.PeriodID, err)
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrOutsidePeriod, period.Name)
	}

	request := domain.AdjustmentRequest{
		RequestID:   uuid.NewString(),
		PeriodID:    req.PeriodID,
		Description: req.Description,
		Status:      domain.AdjustmentRequested,
		RequestedOn: time.Now().UTC(),
		RequestedBy: requestingUserID,
		Notes:       req.Notes,
	}

	if err := s.adjustmentRepo.SaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save adjustment request", slog.String("period_id", req.PeriodID))
		return nil, fmt.Errorf("failed to save adjustment request: %w", err)
	}

	s.LogInfo(ctx, "Adjustment request logged", slog.String("request_id", request.RequestID), slog.String("period_id", req.PeriodID))
	return &request, nil
}

// ResolveAdjustmentRequest settles an open request. Rejection closes it with
// no entry; otherwise the supplied entry is recorded and posted as adjusting,
// and the request links to it.
func (s *adjustingService) ResolveAdjustmentRequest(ctx context.Context, requestID string, req dto.ResolveAdjustmentRequest, requestingUserID string) (*domain.AdjustmentRequest, error) {
	request, err := s.adjustmentRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find adjustment request %s: %w", requestID, err)
	}
	if request.Status != domain.AdjustmentRequested {
		return nil, fmt.Errorf("%w: %s is %s", ErrRequestAlreadyResolved, requestID, request.Status)
	}

	now := time.Now().UTC()

	if req.Reject {
		if err := s.adjustmentRepo.ResolveRequest(ctx, requestID, domain.AdjustmentRejected, nil, requestingUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to reject adjustment request", slog.String("request_id", requestID))
			return nil, fmt.Errorf("failed to reject adjustment request: %w", err)
		}
		request.Status = domain.AdjustmentRejected
		request.ApprovedBy = requestingUserID
		request.ApprovedOn = &now
		request.Notes = req.Notes
		s.LogInfo(ctx, "Adjustment request rejected", slog.String("request_id", requestID))
		return request, nil
	}

	if req.Entry == nil {
		return nil, fmt.Errorf("%w: resolving without rejection requires an adjusting entry", apperrors.ErrValidation)
	}

	entry, err := s.RecordAdjustingEntry(ctx, *req.Entry, requestingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.ResolveRequest(ctx, requestID, domain.AdjustmentPosted, &entry.EntryID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to resolve adjustment request", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to resolve adjustment request: %w", err)
	}

	request.Status = domain.AdjustmentPosted
	request.EntryID = &entry.EntryID
	request.ApprovedBy = requestingUserID
	request.ApprovedOn = &now
	s.LogInfo(ctx, "Adjustment request resolved", slog.String("request_id", requestID), slog.String("entry_id", entry.EntryID))
	return request, nil
}

// RecordAdjustingEntry records and posts an adjusting entry in one step.
// Adjustments are period-end bookwork; a draft stage adds nothing.
func (s *adjustingService) RecordAdjustingEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	req.EntryType = domain.EntryTypeAdjusting
	draft, err := s.journalSvc.RecordEntry(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}
	posted, err := s.journalSvc.PostEntry(ctx, draft.EntryID, creatorUserID)
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// CreateSuppliesAdjustment derives the supplies-used expense from a physical
// count: expense = book balance minus counted remainder.
func (s *adjustingService) CreateSuppliesAdjustment(ctx context.Context, req dto.SuppliesAdjustmentRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.CountedRemaining.IsNegative() {
		return nil, fmt.Errorf("%w: counted supplies cannot be negative", apperrors.ErrValidation)
	}

	supplies, err := s.accountRepo.FindAccountByID(ctx, req.SuppliesAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplies account %s: %w", req.SuppliesAccountID, err)
	}

	status := domain.Posted
	activities, err := s.reportingRepo.GetAccountActivity(ctx, domain.ActivityFilter{
		AccountIDs: []string{req.SuppliesAccountID},
		Status:     &status,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute supplies balance", slog.String("account_id", req.SuppliesAccountID))
		return nil, fmt.Errorf("failed to compute supplies balance: %w", err)
	}

	onBooks := decimal.Zero
	for _, act := range activities {
		onBooks = onBooks.Add(act.NetDebitBalance())
	}

	used := onBooks.Sub(req.CountedRemaining)
	if used.IsNegative() {
		return nil, fmt.Errorf("%w: %s on books, %s counted", ErrSuppliesOverCounted, onBooks.String(), req.CountedRemaining.String())
	}
	if used.IsZero() {
		return nil, fmt.Errorf("%w: no supplies were used", apperrors.ErrValidation)
	}

	memo := req.Memo
	if memo == "" {
		memo = fmt.Sprintf("Physical count %s against book balance %s", req.CountedRemaining.String(), onBooks.String())
	}

	entryReq := dto.CreateEntryRequest{
		EntryDate:   req.EntryDate,
		Description: fmt.Sprintf("Supplies used adjustment (%s)", supplies.Name),
		Memo:        memo,
		Lines: []dto.CreateLineRequest{
			{AccountID: req.ExpenseAccountID, Debit: used},
			{AccountID: req.SuppliesAccountID, Credit: used},
		},
	}
	return s.RecordAdjustingEntry(ctx, entryReq, creatorUserID)
}

// AmortizePrepaid expenses part of a prepaid asset. The amount may not exceed
// the posted balance still on the books.
func (s *adjustingService) AmortizePrepaid(ctx context.Context, req dto.PrepaidAmortizationRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amortization amount must be positive", apperrors.ErrValidation)
	}

	prepaid, err := s.accountRepo.FindAccountByID(ctx, req.PrepaidAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find prepaid account %s: %w", req.PrepaidAccountID, err)
	}

	status := domain.Posted
	activities, err := s.reportingRepo.GetAccountActivity(ctx, domain.ActivityFilter{
		AccountIDs: []string{req.PrepaidAccountID},
		Status:     &status,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute prepaid balance", slog.String("account_id", req.PrepaidAccountID))
		return nil, fmt.Errorf("failed to compute prepaid balance: %w", err)
	}

	onBooks := decimal.Zero
	for _, act := range activities {
		onBooks = onBooks.Add(act.NetDebitBalance())
	}
	if req.Amount.GreaterThan(onBooks) {
		return nil, fmt.Errorf("%w: amount %s exceeds prepaid balance %s", apperrors.ErrValidation, req.Amount.String(), onBooks.String())
	}

	entryReq := dto.CreateEntryRequest{
		EntryDate:   req.EntryDate,
		Description: fmt.Sprintf("Amortization of %s", prepaid.Name),
		Memo:        req.Memo,
		Lines: []dto.CreateLineRequest{
			{AccountID: req.ExpenseAccountID, Debit: req.Amount},
			{AccountID: req.PrepaidAccountID, Credit: req.Amount},
		},
	}
	return s.RecordAdjustingEntry(ctx, entryReq, creatorUserID)
}

// RecordDepreciation posts depreciation expense against the accumulated
// depreciation contra account, never against the asset itself.
func (s *adjustingService) RecordDepreciation(ctx context.Context, req dto.DepreciationRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: depreciation amount must be positive", apperrors.ErrValidation)
	}

	contra, err := s.accountRepo.FindAccountByID(ctx, req.ContraAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contra account %s: %w", req.ContraAccountID, err)
	}
	if contra.AccountType != domain.ContraAsset {
		return nil, fmt.Errorf("%w: account %s (%s) is not a contra asset", apperrors.ErrValidation, contra.Code, contra.Name)
	}

	entryReq := dto.CreateEntryRequest{
		EntryDate:   req.EntryDate,
		Description: fmt.Sprintf("Depreciation: %s", req.AssetName),
		Memo:        req.Memo,
		Lines: []dto.CreateLineRequest{
			{AccountID: req.ExpenseAccountID, Debit: req.Amount},
			{AccountID: req.ContraAccountID, Credit: req.Amount},
		},
	}
	return s.RecordAdjustingEntry(ctx, entryReq, creatorUserID)
}
