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
	ErrAlreadyScheduled = errors.New("entry already has a reversing schedule")
	ErrAlreadyProcessed = errors.New("reversing schedule is already processed")
)

// reversingService manages the reversal queue: scheduling posted adjusting
// entries for mirror reversal, the approval gate, and the due-date sweep.
type reversingService struct {
	BaseService
	reversingRepo portsrepo.ReversingRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	journalSvc    portssvc.JournalSvcFacade
	auditRepo     portsrepo.AuditRepository
}

// ReversingServiceOption is a functional option for configuring the reversing service
type ReversingServiceOption func(*reversingService)

// WithReversingAuditRepository adds audit trail recording to queue transitions
func WithReversingAuditRepository(repo portsrepo.AuditRepository) ReversingServiceOption {
	return func(s *reversingService) {
		s.auditRepo = repo
	}
}

// NewReversingService creates a new reversing service.
func NewReversingService(reversingRepo portsrepo.ReversingRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, journalSvc portssvc.JournalSvcFacade, options ...ReversingServiceOption) portssvc.ReversingSvcFacade {
	svc := &reversingService{
		reversingRepo: reversingRepo,
		journalRepo:   journalRepo,
		journalSvc:    journalSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reversingService implements the ReversingSvcFacade interface
var _ portssvc.ReversingSvcFacade = (*reversingService)(nil)

// ScheduleReversal queues a posted adjusting entry for automatic reversal.
// One schedule per entry; duplicates are rejected.
func (s *reversingService) ScheduleReversal(ctx context.Context, req dto.ScheduleReversalRequest, requestingUserID string) (*domain.ReversingSchedule, error) {
	entry, err := s.journalSvc.GetEntryByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s has status %s", apperrors.ErrConflict, req.EntryID, entry.Status)
	}
	if !entry.IsAdjusting() {
		return nil, fmt.Errorf("%w: only adjusting entries can be scheduled for reversal, entry %s is %s", apperrors.ErrValidation, req.EntryID, entry.EntryType)
	}
	if !req.ReverseOn.After(entry.EntryDate) {
		return nil, fmt.Errorf("%w: reversal date must fall after the entry date", apperrors.ErrValidation)
	}

	existing, err := s.reversingRepo.FindScheduleByEntryID(ctx, req.EntryID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing schedule", slog.String("entry_id", req.EntryID))
		return nil, fmt.Errorf("failed to check for existing schedule: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyScheduled, req.EntryID)
	}

	category := req.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown schedule category %q", apperrors.ErrValidation, category)
	}

	// Default the deadline a week past the reverse date and the reminder two
	// days before it, mirroring how the queue is worked in practice.
	deadline := req.ReverseOn.AddDate(0, 0, 7)
	if req.DeadlineOn != nil {
		deadline = *req.DeadlineOn
	}
	reminder := req.ReverseOn.AddDate(0, 0, -2)
	if req.ReminderOn != nil {
		reminder = *req.ReminderOn
	}
	if deadline.Before(req.ReverseOn) {
		return nil, fmt.Errorf("%w: deadline precedes the reversal date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	schedule := domain.ReversingSchedule{
		ScheduleID:         uuid.NewString(),
		EntryID:            req.EntryID,
		ReverseOn:          req.ReverseOn,
		DeadlineOn:         deadline,
		ReminderOn:         reminder,
		Category:           category,
		Status:             domain.SchedulePending,
		ApprovalRequired:   req.ApprovalRequired,
		AuthorizationLevel: req.AuthorizationLevel,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.reversingRepo.SaveSchedule(ctx, schedule); err != nil {
		s.LogError(ctx, err, "Failed to save reversing schedule", slog.String("entry_id", req.EntryID))
		return nil, fmt.Errorf("failed to save reversing schedule: %w", err)
	}

	s.recordAudit(ctx, "reversal.scheduled", schedule.ScheduleID, req.EntryID, requestingUserID)
	s.LogInfo(ctx, "Reversal scheduled",
		slog.String("schedule_id", schedule.ScheduleID),
		slog.String("entry_id", req.EntryID),
		slog.Time("reverse_on", req.ReverseOn))
	return &schedule, nil
}

func (s *reversingService) GetScheduleByID(ctx context.Context, scheduleID string) (*domain.ReversingSchedule, error) {
	schedule, err := s.reversingRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find schedule", slog.String("schedule_id", scheduleID))
		}
		return nil, fmt.Errorf("failed to find schedule %s: %w", scheduleID, err)
	}
	return schedule, nil
}

func (s *reversingService) ListOpenSchedules(ctx context.Context) ([]domain.ReversingSchedule, error) {
	schedules, err := s.reversingRepo.ListOpenSchedules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open schedules")
		return nil, fmt.Errorf("failed to list open schedules: %w", err)
	}
	return schedules, nil
}

// ApproveSchedule clears the approval gate of a schedule that requires it.
func (s *reversingService) ApproveSchedule(ctx context.Context, scheduleID string, approverUserID string) (*domain.ReversingSchedule, error) {
	schedule, err := s.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status == domain.ScheduleProcessed {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyProcessed, scheduleID)
	}
	if !schedule.ApprovalRequired {
		return nil, fmt.Errorf("%w: schedule %s does not require approval", apperrors.ErrValidation, scheduleID)
	}
	if schedule.ApprovedAt != nil {
		return schedule, nil // already approved
	}

	now := time.Now().UTC()
	if err := s.reversingRepo.ApproveSchedule(ctx, scheduleID, approverUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve schedule", slog.String("schedule_id", scheduleID))
		return nil, fmt.Errorf("failed to approve schedule: %w", err)
	}

	schedule.ApprovedBy = approverUserID
	schedule.ApprovedAt = &now
	s.recordAudit(ctx, "reversal.approved", scheduleID, schedule.EntryID, approverUserID)
	s.LogInfo(ctx, "Reversal schedule approved", slog.String("schedule_id", scheduleID))
	return schedule, nil
}

// ProcessDue sweeps the queue as of a date. Approved due schedules get their
// mirror entry posted exactly once; unapproved schedules past their deadline
// are flagged overdue; pending schedules past their reminder date move to
// reminded. The sweep is idempotent.
func (s *reversingService) ProcessDue(ctx context.Context, asOf time.Time, requestingUserID string) (*dto.ProcessDueResponse, error) {
	schedules, err := s.reversingRepo.ListOpenSchedules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list schedules for sweep")
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	response := &dto.ProcessDueResponse{}
	now := time.Now().UTC()

	for i := range schedules {
		schedule := schedules[i]

		if schedule.Status == domain.ScheduleProcessed || schedule.ReversalEntryID != nil {
			continue
		}

		if !schedule.Due(asOf) {
			// Not due yet; surface a reminder when its window opened.
			if schedule.Status == domain.SchedulePending && !schedule.ReminderOn.After(asOf) {
				if err := s.reversingRepo.UpdateScheduleStatus(ctx, schedule.ScheduleID, domain.ScheduleReminded, nil, requestingUserID, now); err != nil {
					s.LogError(ctx, err, "Failed to mark schedule reminded", slog.String("schedule_id", schedule.ScheduleID))
					continue
				}
				schedule.Status = domain.ScheduleReminded
			}
			continue
		}

		if !schedule.Approved() {
			if schedule.DeadlineOn.Before(asOf) && schedule.Status != domain.ScheduleOverdue {
				if err := s.reversingRepo.UpdateScheduleStatus(ctx, schedule.ScheduleID, domain.ScheduleOverdue, nil, requestingUserID, now); err != nil {
					s.LogError(ctx, err, "Failed to mark schedule overdue", slog.String("schedule_id", schedule.ScheduleID))
					continue
				}
				schedule.Status = domain.ScheduleOverdue
				s.recordAudit(ctx, "reversal.overdue", schedule.ScheduleID, schedule.EntryID, requestingUserID)
				response.Overdue = append(response.Overdue, dto.ToScheduleResponse(&schedule))
			} else {
				response.Skipped = append(response.Skipped, dto.ToScheduleResponse(&schedule))
			}
			continue
		}

		reversal, err := s.postReversal(ctx, &schedule, requestingUserID)
		if err != nil {
			s.LogError(ctx, err, "Failed to post reversal", slog.String("schedule_id", schedule.ScheduleID))
			response.Skipped = append(response.Skipped, dto.ToScheduleResponse(&schedule))
			continue
		}

		if err := s.reversingRepo.UpdateScheduleStatus(ctx, schedule.ScheduleID, domain.ScheduleProcessed, &reversal.EntryID, requestingUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to mark schedule processed", slog.String("schedule_id", schedule.ScheduleID))
			continue
		}
		schedule.Status = domain.ScheduleProcessed
		schedule.ReversalEntryID = &reversal.EntryID
		s.recordAudit(ctx, "reversal.processed", schedule.ScheduleID, reversal.EntryID, requestingUserID)
		response.Processed = append(response.Processed, dto.ToScheduleResponse(&schedule))
	}

	s.LogInfo(ctx, "Reversal sweep complete",
		slog.Int("processed", len(response.Processed)),
		slog.Int("skipped", len(response.Skipped)),
		slog.Int("overdue", len(response.Overdue)))
	return response, nil
}

// postReversal records and posts the mirror entry of the scheduled original.
func (s *reversingService) postReversal(ctx context.Context, schedule *domain.ReversingSchedule, requestingUserID string) (*domain.JournalEntry, error) {
	if !schedule.Approved() {
		return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrApprovalRequired, schedule.ScheduleID)
	}

	original, err := s.journalSvc.GetEntryByID(ctx, schedule.EntryID)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.CreateLineRequest, len(original.Lines))
	for i, line := range original.Lines {
		mirrored := line.Mirror()
		lines[i] = dto.CreateLineRequest{
			AccountID: mirrored.AccountID,
			Debit:     mirrored.Debit,
			Credit:    mirrored.Credit,
			Notes:     mirrored.Notes,
		}
	}

	draft, err := s.journalSvc.RecordEntry(ctx, dto.CreateEntryRequest{
		EntryDate:   schedule.ReverseOn,
		Description: fmt.Sprintf("Reversal of: %s", original.Description),
		EntryType:   domain.EntryTypeReversing,
		Lines:       lines,
	}, requestingUserID)
	if err != nil {
		return nil, err
	}

	posted, err := s.journalSvc.PostEntry(ctx, draft.EntryID, requestingUserID)
	if err != nil {
		return nil, err
	}

	// Link the mirror back to the entry it reverses.
	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryLinks(ctx, posted.EntryID, &schedule.EntryID, nil, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to link reversal to original", slog.String("entry_id", posted.EntryID))
	} else {
		posted.ReversalOf = &schedule.EntryID
	}
	return posted, nil
}

// GetReversingReport builds the queue report with due-date countdowns.
func (s *reversingService) GetReversingReport(ctx context.Context, asOf time.Time) ([]domain.ReversingReportRow, error) {
	schedules, err := s.reversingRepo.ListOpenSchedules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list schedules for report")
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	rows := make([]domain.ReversingReportRow, 0, len(schedules))
	for _, schedule := range schedules {
		entry, err := s.journalRepo.FindEntryByID(ctx, schedule.EntryID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load entry for report row", slog.String("entry_id", schedule.EntryID))
			return nil, fmt.Errorf("failed to load entry %s: %w", schedule.EntryID, err)
		}
		days := int(schedule.ReverseOn.Sub(asOf).Hours() / 24)
		rows = append(rows, domain.ReversingReportRow{
			ScheduleID:       schedule.ScheduleID,
			EntryID:          schedule.EntryID,
			EntryDescription: entry.Description,
			EntryDate:        entry.EntryDate,
			ReverseOn:        schedule.ReverseOn,
			DeadlineOn:       schedule.DeadlineOn,
			Category:         schedule.Category,
			Status:           schedule.Status,
			ApprovalRequired: schedule.ApprovalRequired,
			DaysUntilDue:     days,
		})
	}
	return rows, nil
}

func (s *reversingService) recordAudit(ctx context.Context, action, entityID, details, userID string) {
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
