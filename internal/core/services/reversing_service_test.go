package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/core/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

type ReversingServiceTestSuite struct {
	suite.Suite
	mockReversingRepo *MockReversingRepository
	mockJournalRepo   *MockJournalRepository
	mockJournalSvc    *MockJournalService
	service           portssvc.ReversingSvcFacade
	adjustingEntry    domain.JournalEntry
	reverseOn         time.Time
}

func (suite *ReversingServiceTestSuite) SetupTest() {
	suite.mockReversingRepo = new(MockReversingRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.service = services.NewReversingService(suite.mockReversingRepo, suite.mockJournalRepo, suite.mockJournalSvc)

	now := time.Now().UTC()
	suite.adjustingEntry = domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		PeriodID:    uuid.NewString(),
		Description: "Accrue salaries",
		Status:      domain.Posted,
		EntryType:   domain.EntryTypeAdjusting,
		PostedAt:    &now,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), AccountID: "salaries-expense", Debit: decimal.NewFromInt(210)},
			{LineID: uuid.NewString(), AccountID: "salaries-payable", Credit: decimal.NewFromInt(210)},
		},
	}
	suite.reverseOn = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *ReversingServiceTestSuite) scheduleFixture(status domain.ScheduleStatus, approvalRequired bool) domain.ReversingSchedule {
	return domain.ReversingSchedule{
		ScheduleID:       uuid.NewString(),
		EntryID:          suite.adjustingEntry.EntryID,
		ReverseOn:        suite.reverseOn,
		DeadlineOn:       suite.reverseOn.AddDate(0, 0, 7),
		ReminderOn:       suite.reverseOn.AddDate(0, 0, -2),
		Category:         domain.CategoryAccrual,
		Status:           status,
		ApprovalRequired: approvalRequired,
	}
}

func (suite *ReversingServiceTestSuite) TestScheduleReversal_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.ScheduleReversalRequest{
		EntryID:   suite.adjustingEntry.EntryID,
		ReverseOn: suite.reverseOn,
		Category:  domain.CategoryAccrual,
	}

	suite.mockJournalSvc.On("GetEntryByID", ctx, req.EntryID).Return(&suite.adjustingEntry, nil).Once()
	suite.mockReversingRepo.On("FindScheduleByEntryID", ctx, req.EntryID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReversingRepo.On("SaveSchedule", ctx, mock.AnythingOfType("domain.ReversingSchedule")).Return(nil).Once()

	schedule, err := suite.service.ScheduleReversal(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SchedulePending, schedule.Status)
	suite.Equal(domain.CategoryAccrual, schedule.Category)
	suite.Equal(suite.reverseOn.AddDate(0, 0, 7), schedule.DeadlineOn)
	suite.Equal(suite.reverseOn.AddDate(0, 0, -2), schedule.ReminderOn)
	suite.Equal(userID, schedule.CreatedBy)
	suite.mockReversingRepo.AssertExpectations(suite.T())
}

func (suite *ReversingServiceTestSuite) TestScheduleReversal_NonAdjustingRejected() {
	ctx := context.Background()
	normal := suite.adjustingEntry
	normal.EntryType = domain.EntryTypeNormal

	suite.mockJournalSvc.On("GetEntryByID", ctx, normal.EntryID).Return(&normal, nil).Once()

	_, err := suite.service.ScheduleReversal(ctx, dto.ScheduleReversalRequest{
		EntryID:   normal.EntryID,
		ReverseOn: suite.reverseOn,
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReversingRepo.AssertNotCalled(suite.T(), "SaveSchedule", mock.Anything, mock.Anything)
}

func (suite *ReversingServiceTestSuite) TestScheduleReversal_DraftRejected() {
	ctx := context.Background()
	draft := suite.adjustingEntry
	draft.Status = domain.Draft

	suite.mockJournalSvc.On("GetEntryByID", ctx, draft.EntryID).Return(&draft, nil).Once()

	_, err := suite.service.ScheduleReversal(ctx, dto.ScheduleReversalRequest{
		EntryID:   draft.EntryID,
		ReverseOn: suite.reverseOn,
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReversingServiceTestSuite) TestScheduleReversal_ReverseDateNotAfterEntry() {
	ctx := context.Background()

	suite.mockJournalSvc.On("GetEntryByID", ctx, suite.adjustingEntry.EntryID).Return(&suite.adjustingEntry, nil).Once()

	_, err := suite.service.ScheduleReversal(ctx, dto.ScheduleReversalRequest{
		EntryID:   suite.adjustingEntry.EntryID,
		ReverseOn: suite.adjustingEntry.EntryDate,
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReversingServiceTestSuite) TestScheduleReversal_DuplicateRejected() {
	ctx := context.Background()
	existing := suite.scheduleFixture(domain.SchedulePending, false)

	suite.mockJournalSvc.On("GetEntryByID", ctx, suite.adjustingEntry.EntryID).Return(&suite.adjustingEntry, nil).Once()
	suite.mockReversingRepo.On("FindScheduleByEntryID", ctx, suite.adjustingEntry.EntryID).Return(&existing, nil).Once()

	_, err := suite.service.ScheduleReversal(ctx, dto.ScheduleReversalRequest{
		EntryID:   suite.adjustingEntry.EntryID,
		ReverseOn: suite.reverseOn,
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyScheduled)
}

func (suite *ReversingServiceTestSuite) TestApproveSchedule_Success() {
	ctx := context.Background()
	schedule := suite.scheduleFixture(domain.SchedulePending, true)
	approver := uuid.NewString()

	suite.mockReversingRepo.On("FindScheduleByID", ctx, schedule.ScheduleID).Return(&schedule, nil).Once()
	suite.mockReversingRepo.On("ApproveSchedule", ctx, schedule.ScheduleID, approver, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveSchedule(ctx, schedule.ScheduleID, approver)

	suite.Require().NoError(err)
	suite.Equal(approver, approved.ApprovedBy)
	suite.Require().NotNil(approved.ApprovedAt)
	suite.mockReversingRepo.AssertExpectations(suite.T())
}

func (suite *ReversingServiceTestSuite) TestApproveSchedule_NotRequired() {
	ctx := context.Background()
	schedule := suite.scheduleFixture(domain.SchedulePending, false)

	suite.mockReversingRepo.On("FindScheduleByID", ctx, schedule.ScheduleID).Return(&schedule, nil).Once()

	_, err := suite.service.ApproveSchedule(ctx, schedule.ScheduleID, "approver")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReversingServiceTestSuite) TestProcessDue_PostsMirrorAndMarksProcessed() {
	ctx := context.Background()
	userID := uuid.NewString()
	schedule := suite.scheduleFixture(domain.SchedulePending, false)
	asOf := suite.reverseOn

	reversalID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: reversalID, Status: domain.Draft, EntryType: domain.EntryTypeReversing}
	posted := &domain.JournalEntry{EntryID: reversalID, Status: domain.Posted, EntryType: domain.EntryTypeReversing}

	suite.mockReversingRepo.On("ListOpenSchedules", ctx).Return([]domain.ReversingSchedule{schedule}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByID", ctx, schedule.EntryID).Return(&suite.adjustingEntry, nil).Once()
	suite.mockJournalSvc.On("RecordEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		if req.EntryType != domain.EntryTypeReversing || !req.EntryDate.Equal(suite.reverseOn) || len(req.Lines) != 2 {
			return false
		}
		// Debits and credits are swapped relative to the original.
		return req.Lines[0].Credit.Equal(decimal.NewFromInt(210)) && req.Lines[1].Debit.Equal(decimal.NewFromInt(210))
	}), userID).Return(draft, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, reversalID, userID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryLinks", ctx, reversalID, mock.AnythingOfType("*string"), (*string)(nil), userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockReversingRepo.On("UpdateScheduleStatus", ctx, schedule.ScheduleID, domain.ScheduleProcessed, &reversalID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	response, err := suite.service.ProcessDue(ctx, asOf, userID)

	suite.Require().NoError(err)
	suite.Len(response.Processed, 1)
	suite.Empty(response.Skipped)
	suite.Empty(response.Overdue)
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockReversingRepo.AssertExpectations(suite.T())
}

func (suite *ReversingServiceTestSuite) TestProcessDue_UnapprovedDueIsSkipped() {
	ctx := context.Background()
	schedule := suite.scheduleFixture(domain.SchedulePending, true)
	asOf := suite.reverseOn

	suite.mockReversingRepo.On("ListOpenSchedules", ctx).Return([]domain.ReversingSchedule{schedule}, nil).Once()

	response, err := suite.service.ProcessDue(ctx, asOf, "user")

	suite.Require().NoError(err)
	suite.Empty(response.Processed)
	suite.Len(response.Skipped, 1)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversingServiceTestSuite) TestProcessDue_UnapprovedPastDeadlineGoesOverdue() {
	ctx := context.Background()
	schedule := suite.scheduleFixture(domain.SchedulePending, true)
	asOf := schedule.DeadlineOn.AddDate(0, 0, 1)

	suite.mockReversingRepo.On("ListOpenSchedules", ctx).Return([]domain.ReversingSchedule{schedule}, nil).Once()
	suite.mockReversingRepo.On("UpdateScheduleStatus", ctx, schedule.ScheduleID, domain.ScheduleOverdue, (*string)(nil), "user", mock.AnythingOfType("time.Time")).Return(nil).Once()

	response, err := suite.service.ProcessDue(ctx, asOf, "user")

	suite.Require().NoError(err)
	suite.Len(response.Overdue, 1)
	suite.Empty(response.Processed)
	suite.mockReversingRepo.AssertExpectations(suite.T())
}

func (suite *ReversingServiceTestSuite) TestProcessDue_PendingInReminderWindowGetsReminded() {
	ctx := context.Background()
	schedule := suite.scheduleFixture(domain.SchedulePending, false)
	asOf := schedule.ReminderOn

	suite.mockReversingRepo.On("ListOpenSchedules", ctx).Return([]domain.ReversingSchedule{schedule}, nil).Once()
	suite.mockReversingRepo.On("UpdateScheduleStatus", ctx, schedule.ScheduleID, domain.ScheduleReminded, (*string)(nil), "user", mock.AnythingOfType("time.Time")).Return(nil).Once()

	response, err := suite.service.ProcessDue(ctx, asOf, "user")

	suite.Require().NoError(err)
	suite.Empty(response.Processed)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReversingRepo.AssertExpectations(suite.T())
}

func (suite *ReversingServiceTestSuite) TestGetReversingReport_CountsDaysUntilDue() {
	ctx := context.Background()
	schedule := suite.scheduleFixture(domain.SchedulePending, false)
	asOf := suite.reverseOn.AddDate(0, 0, -5)

	suite.mockReversingRepo.On("ListOpenSchedules", ctx).Return([]domain.ReversingSchedule{schedule}, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, schedule.EntryID).Return(&suite.adjustingEntry, nil).Once()

	rows, err := suite.service.GetReversingReport(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(5, rows[0].DaysUntilDue)
	suite.Equal(suite.adjustingEntry.Description, rows[0].EntryDescription)
}

func (suite *ReversingServiceTestSuite) TestProcessDue_NextDaySweepProducesNoDuplicate() {
	ctx := context.Background()
	userID := uuid.NewString()
	reversalID := uuid.NewString()

	processed := suite.scheduleFixture(domain.ScheduleProcessed, false)
	processed.ReversalEntryID = &reversalID
	linkedOnly := suite.scheduleFixture(domain.SchedulePending, false)
	linkedOnly.ReversalEntryID = &reversalID

	suite.mockReversingRepo.On("ListOpenSchedules", ctx).Return([]domain.ReversingSchedule{processed, linkedOnly}, nil).Once()

	result, err := suite.service.ProcessDue(ctx, suite.reverseOn.AddDate(0, 0, 1), userID)

	suite.Require().NoError(err)
	suite.Empty(result.Processed)
	suite.Empty(result.Skipped)
	suite.Empty(result.Overdue)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReversingRepo.AssertNotCalled(suite.T(), "UpdateScheduleStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReversingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReversingServiceTestSuite))
}
