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
	"github.com/openbooks/bookkeeping_engine/internal/utils/accounting"
)

var (
	ErrDescriptionMissing = errors.New("entry description is required")
	ErrEntryNotDraft      = errors.New("entry is not in draft status")
	ErrEntryNotPosted     = errors.New("entry is not posted")
)

// Source types stamped on the two halves of a correction.
const (
	SourceCorrectionCounter     = "CORRECTION_COUNTER"
	SourceCorrectionReplacement = "CORRECTION_REPLACEMENT"
)

// journalService provides the journal entry lifecycle: record as draft, post,
// void, and append-only correction of posted entries.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	periodRepo   portsrepo.PeriodRepositoryFacade
	auditRepo    portsrepo.AuditRepository
	scheduleRepo portsrepo.ReversingRepositoryFacade
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalAuditRepository adds audit trail recording to entry transitions
func WithJournalAuditRepository(repo portsrepo.AuditRepository) JournalServiceOption {
	return func(s *journalService) {
		s.auditRepo = repo
	}
}

// WithReversingScheduleRepository enables reversal scheduling at record time.
func WithReversingScheduleRepository(repo portsrepo.ReversingRepositoryFacade) JournalServiceOption {
	return func(s *journalService) {
		s.scheduleRepo = repo
	}
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildEntry validates a create request and assembles the domain entry with
// fresh IDs. The caller decides status and entry type.
func (s *journalService) buildEntry(ctx context.Context, entryDate time.Time, description, memo, documentRef, externalRef, sourceType string, entryType domain.EntryType, reqLines []dto.CreateLineRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if entryType == "" {
		entryType = domain.EntryTypeNormal
	}
	if !entryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entryType)
	}
	if len(reqLines) == 0 {
		return nil, fmt.Errorf("%w: entry has no lines", apperrors.ErrEmptyEntry)
	}

	entryID := uuid.NewString()
	lines := make([]domain.JournalLine, len(reqLines))
	accountIDs := make([]string, 0, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: lr.AccountID,
			Debit:     lr.Debit,
			Credit:    lr.Credit,
			Notes:     lr.Notes,
		}
		accountIDs = append(accountIDs, lr.AccountID)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	// Every referenced account must exist and be active.
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s)", apperrors.ErrInactiveAccount, acc.Code, acc.Name)
		}
	}

	// The entry date must land in a known, open period.
	period, err := s.periodRepo.FindPeriodForDate(ctx, entryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no period contains %s", apperrors.ErrOutsidePeriod, entryDate.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to resolve period for entry", slog.Time("entry_date", entryDate))
		return nil, fmt.Errorf("failed to resolve period: %w", err)
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrOutsidePeriod, period.Name)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		PeriodID:    period.PeriodID,
		Description: description,
		Status:      domain.Draft,
		EntryType:   entryType,
		Memo:        memo,
		DocumentRef: documentRef,
		ExternalRef: externalRef,
		SourceType:  sourceType,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	return &entry, nil
}

// RecordEntry validates and persists a new entry, as a draft unless the
// request asks to post immediately.
func (s *journalService) RecordEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.ScheduleReverseOn != nil {
		if req.EntryType != domain.EntryTypeAdjusting {
			return nil, fmt.Errorf("%w: only adjusting entries can schedule a reversal", apperrors.ErrValidation)
		}
		if !req.PostImmediately {
			return nil, fmt.Errorf("%w: scheduling a reversal requires posting immediately", apperrors.ErrValidation)
		}
		if s.scheduleRepo == nil {
			return nil, fmt.Errorf("%w: reversal scheduling is not enabled", apperrors.ErrValidation)
		}
		if !req.ScheduleReverseOn.After(req.EntryDate) {
			return nil, fmt.Errorf("%w: reversal date must fall after the entry date", apperrors.ErrValidation)
		}
	}

	entry, err := s.buildEntry(ctx, req.EntryDate, req.Description, req.Memo, req.DocumentRef, req.ExternalRef, req.SourceType, req.EntryType, req.Lines, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.recordAudit(ctx, "entry.recorded", entry.EntryID, entry.Description, creatorUserID)
	s.LogInfo(ctx, "Entry recorded", slog.String("entry_id", entry.EntryID), slog.String("period_id", entry.PeriodID))

	if req.PostImmediately {
		// buildEntry already vetted balance, accounts, and the open period.
		now := time.Now().UTC()
		if err := s.journalRepo.UpdateEntryStatus(ctx, entry.EntryID, domain.Posted, &now, creatorUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to post entry after recording", slog.String("entry_id", entry.EntryID))
			return nil, fmt.Errorf("failed to post entry: %w", err)
		}
		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.PostedBy = creatorUserID
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = creatorUserID
		s.recordAudit(ctx, "entry.posted", entry.EntryID, entry.Description, creatorUserID)
	}

	if req.ScheduleReverseOn != nil {
		schedule := domain.ReversingSchedule{
			ScheduleID: uuid.NewString(),
			EntryID:    entry.EntryID,
			ReverseOn:  *req.ScheduleReverseOn,
			DeadlineOn: req.ScheduleReverseOn.AddDate(0, 0, 7),
			ReminderOn: req.ScheduleReverseOn.AddDate(0, 0, -2),
			Category:   domain.CategoryAccrual,
			Status:     domain.SchedulePending,
			AuditFields: domain.AuditFields{
				CreatedAt:     entry.CreatedAt,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: entry.CreatedAt,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := s.scheduleRepo.SaveSchedule(ctx, schedule); err != nil {
			s.LogError(ctx, err, "Failed to save reversing schedule", slog.String("entry_id", entry.EntryID))
			return nil, fmt.Errorf("entry %s posted but reversal scheduling failed: %w", entry.EntryID, err)
		}
		s.LogInfo(ctx, "Reversal scheduled at record time", slog.String("entry_id", entry.EntryID), slog.Time("reverse_on", schedule.ReverseOn))
	}

	return entry, nil
}

// PostEntry transitions a balanced draft to posted. The balance check runs
// again at post time; the draft could have been stored before accounts or
// periods changed underneath it.
func (s *journalService) PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: %s has status %s", ErrEntryNotDraft, entryID, entry.Status)
	}

	if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve period %s: %w", entry.PeriodID, err)
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrOutsidePeriod, period.Name)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.Posted, &now, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = requestingUserID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	s.recordAudit(ctx, "entry.posted", entryID, entry.Description, requestingUserID)
	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID))
	return entry, nil
}

// VoidEntry voids a draft. Posted entries are immutable and must be corrected
// with a counter entry instead.
func (s *journalService) VoidEntry(ctx context.Context, entryID string, requestingUserID string) error {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: cannot void entry %s with status %s", apperrors.ErrConflict, entryID, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.Void, nil, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to void entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to void entry: %w", err)
	}

	s.recordAudit(ctx, "entry.voided", entryID, entry.Description, requestingUserID)
	s.LogInfo(ctx, "Entry voided", slog.String("entry_id", entryID))
	return nil
}

// CorrectEntry appends a counter entry that mirrors every line of a posted
// entry, then a replacement entry with the corrected content. Both are posted
// immediately and both reference the original; the original is untouched.
func (s *journalService) CorrectEntry(ctx context.Context, entryID string, req dto.CorrectEntryRequest, requestingUserID string) (*domain.JournalEntry, *domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	if original.Status != domain.Posted {
		return nil, nil, fmt.Errorf("%w: %s has status %s", ErrEntryNotPosted, entryID, original.Status)
	}

	now := time.Now().UTC()

	counterID := uuid.NewString()
	counterLines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		mirrored := line.Mirror()
		mirrored.LineID = uuid.NewString()
		mirrored.EntryID = counterID
		counterLines[i] = mirrored
	}
	counter := domain.JournalEntry{
		EntryID:     counterID,
		EntryDate:   req.EntryDate,
		PeriodID:    original.PeriodID,
		Description: fmt.Sprintf("Correction of: %s", original.Description),
		Status:      domain.Posted,
		EntryType:   original.EntryType,
		Memo:        req.Memo,
		SourceType:  SourceCorrectionCounter,
		CounterOf:   &original.EntryID,
		PostedAt:    &now,
		PostedBy:    requestingUserID,
		Lines:       counterLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	// The counter entry's date must still land in an open period.
	period, err := s.periodRepo.FindPeriodForDate(ctx, req.EntryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: no period contains %s", apperrors.ErrOutsidePeriod, req.EntryDate.Format("2006-01-02"))
		}
		return nil, nil, fmt.Errorf("failed to resolve period: %w", err)
	}
	if period.IsClosed {
		return nil, nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrOutsidePeriod, period.Name)
	}
	counter.PeriodID = period.PeriodID

	replacement, err := s.buildEntry(ctx, req.EntryDate, req.Description, req.Memo, original.DocumentRef, original.ExternalRef, SourceCorrectionReplacement, original.EntryType, req.Lines, requestingUserID)
	if err != nil {
		return nil, nil, err
	}
	replacement.Status = domain.Posted
	replacement.PostedAt = &now
	replacement.PostedBy = requestingUserID
	replacement.CounterOf = &original.EntryID

	if err := s.journalRepo.SaveEntry(ctx, counter); err != nil {
		s.LogError(ctx, err, "Failed to save counter entry", slog.String("original_entry_id", entryID))
		return nil, nil, fmt.Errorf("failed to save counter entry: %w", err)
	}
	if err := s.journalRepo.SaveEntry(ctx, *replacement); err != nil {
		s.LogError(ctx, err, "Failed to save replacement entry", slog.String("original_entry_id", entryID))
		return nil, nil, fmt.Errorf("failed to save replacement entry: %w", err)
	}

	s.recordAudit(ctx, "entry.corrected", entryID, fmt.Sprintf("counter=%s replacement=%s", counter.EntryID, replacement.EntryID), requestingUserID)
	s.LogInfo(ctx, "Entry corrected",
		slog.String("entry_id", entryID),
		slog.String("counter_entry_id", counter.EntryID),
		slog.String("replacement_entry_id", replacement.EntryID))
	return &counter, replacement, nil
}

// GetEntryByID retrieves an entry with its lines populated.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries with lines populated.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.Status, params.EntryType, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch lines for entry page")
			return nil, fmt.Errorf("failed to retrieve lines: %w", err)
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	response := dto.ToListEntriesResponse(entries, nextToken)
	return &response, nil
}

func (s *journalService) recordAudit(ctx context.Context, action, entityID, details, userID string) {
	if s.auditRepo == nil {
		return
	}
	event := domain.AuditEvent{
		EventID:     uuid.NewString(),
		Action:      action,
		EntityID:    entityID,
		Details:     details,
		PerformedBy: userID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.auditRepo.SaveEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event", slog.String("action", action), slog.String("entity_id", entityID))
	}
}

// uniqueStrings returns the distinct values of in, preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
