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

type AdjustingServiceTestSuite struct {
	suite.Suite
	mockAdjustmentRepo *MockAdjustmentRepository
	mockReportingRepo  *MockReportingRepository
	mockAccountRepo    *MockAccountRepository
	mockPeriodRepo     *MockPeriodRepository
	mockJournalSvc     *MockJournalService
	service            portssvc.AdjustingSvcFacade
	openPeriod         domain.Period
	suppliesAccount    domain.Account
	entryDate          time.Time
}

func (suite *AdjustingServiceTestSuite) SetupTest() {
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.service = services.NewAdjustingService(
		suite.mockAdjustmentRepo,
		suite.mockReportingRepo,
		suite.mockAccountRepo,
		suite.mockPeriodRepo,
		suite.mockJournalSvc,
	)

	suite.openPeriod = domain.Period{
		PeriodID:  uuid.NewString(),
		Name:      "March 2025",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.suppliesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "124",
		Name:        "Supplies",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.entryDate = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *AdjustingServiceTestSuite) adjustingEntryRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "Accrue interest",
		Lines: []dto.CreateLineRequest{
			{AccountID: "interest-expense", Debit: decimal.NewFromInt(50)},
			{AccountID: "interest-payable", Credit: decimal.NewFromInt(50)},
		},
	}
}

func (suite *AdjustingServiceTestSuite) TestLogAdjustmentRequest_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockAdjustmentRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.AdjustmentRequest")).Return(nil).Once()

	request, err := suite.service.LogAdjustmentRequest(ctx, dto.CreateAdjustmentRequestRequest{
		PeriodID:    suite.openPeriod.PeriodID,
		Description: "Depreciation not yet recorded",
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentRequested, request.Status)
	suite.Equal(userID, request.RequestedBy)
	suite.NotEmpty(request.RequestID)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustingServiceTestSuite) TestLogAdjustmentRequest_ClosedPeriodRejected() {
	ctx := context.Background()
	closed := suite.openPeriod
	closed.IsClosed = true

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()

	_, err := suite.service.LogAdjustmentRequest(ctx, dto.CreateAdjustmentRequestRequest{
		PeriodID:    closed.PeriodID,
		Description: "Too late",
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOutsidePeriod)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *AdjustingServiceTestSuite) TestResolveAdjustmentRequest_PostsEntry() {
	ctx := context.Background()
	userID := uuid.NewString()
	request := &domain.AdjustmentRequest{
		RequestID: uuid.NewString(),
		PeriodID:  suite.openPeriod.PeriodID,
		Status:    domain.AdjustmentRequested,
	}
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft, EntryType: domain.EntryTypeAdjusting}
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted, EntryType: domain.EntryTypeAdjusting}

	suite.mockAdjustmentRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockJournalSvc.On("RecordEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.EntryType == domain.EntryTypeAdjusting
	}), userID).Return(draft, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, entryID, userID).Return(posted, nil).Once()
	suite.mockAdjustmentRepo.On("ResolveRequest", ctx, request.RequestID, domain.AdjustmentPosted, &entryID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entryReq := suite.adjustingEntryRequest()
	resolved, err := suite.service.ResolveAdjustmentRequest(ctx, request.RequestID, dto.ResolveAdjustmentRequest{Entry: &entryReq}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentPosted, resolved.Status)
	suite.Require().NotNil(resolved.EntryID)
	suite.Equal(entryID, *resolved.EntryID)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *AdjustingServiceTestSuite) TestResolveAdjustmentRequest_Reject() {
	ctx := context.Background()
	request := &domain.AdjustmentRequest{
		RequestID: uuid.NewString(),
		PeriodID:  suite.openPeriod.PeriodID,
		Status:    domain.AdjustmentRequested,
	}

	suite.mockAdjustmentRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockAdjustmentRepo.On("ResolveRequest", ctx, request.RequestID, domain.AdjustmentRejected, (*string)(nil), "reviewer", mock.AnythingOfType("time.Time")).Return(nil).Once()

	resolved, err := suite.service.ResolveAdjustmentRequest(ctx, request.RequestID, dto.ResolveAdjustmentRequest{Reject: true, Notes: "not material"}, "reviewer")

	suite.Require().NoError(err)
	suite.Equal(domain.AdjustmentRejected, resolved.Status)
	suite.Equal("not material", resolved.Notes)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustingServiceTestSuite) TestResolveAdjustmentRequest_AlreadyResolved() {
	ctx := context.Background()
	request := &domain.AdjustmentRequest{
		RequestID: uuid.NewString(),
		Status:    domain.AdjustmentPosted,
	}

	suite.mockAdjustmentRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ResolveAdjustmentRequest(ctx, request.RequestID, dto.ResolveAdjustmentRequest{Reject: true}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRequestAlreadyResolved)
}

func (suite *AdjustingServiceTestSuite) TestResolveAdjustmentRequest_EntryRequired() {
	ctx := context.Background()
	request := &domain.AdjustmentRequest{
		RequestID: uuid.NewString(),
		Status:    domain.AdjustmentRequested,
	}

	suite.mockAdjustmentRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.ResolveAdjustmentRequest(ctx, request.RequestID, dto.ResolveAdjustmentRequest{}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustingServiceTestSuite) TestCreateSuppliesAdjustment_DerivesUsage() {
	ctx := context.Background()
	userID := uuid.NewString()
	expenseID := "supplies-expense"

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.suppliesAccount.AccountID).Return(&suite.suppliesAccount, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return len(f.AccountIDs) == 1 && f.AccountIDs[0] == suite.suppliesAccount.AccountID
	})).Return([]domain.AccountActivity{
		{AccountID: suite.suppliesAccount.AccountID, Code: "124", Name: "Supplies", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(800), TotalCredit: decimal.NewFromInt(100)},
	}, nil).Once()

	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft, EntryType: domain.EntryTypeAdjusting}
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted, EntryType: domain.EntryTypeAdjusting}

	// 700 on the books, 250 counted: 450 of supplies used.
	suite.mockJournalSvc.On("RecordEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		if req.EntryType != domain.EntryTypeAdjusting || len(req.Lines) != 2 {
			return false
		}
		return req.Lines[0].AccountID == expenseID && req.Lines[0].Debit.Equal(decimal.NewFromInt(450)) &&
			req.Lines[1].AccountID == suite.suppliesAccount.AccountID && req.Lines[1].Credit.Equal(decimal.NewFromInt(450))
	}), userID).Return(draft, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, entryID, userID).Return(posted, nil).Once()

	entry, err := suite.service.CreateSuppliesAdjustment(ctx, dto.SuppliesAdjustmentRequest{
		EntryDate:         suite.entryDate,
		SuppliesAccountID: suite.suppliesAccount.AccountID,
		ExpenseAccountID:  expenseID,
		CountedRemaining:  decimal.NewFromInt(250),
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *AdjustingServiceTestSuite) TestCreateSuppliesAdjustment_OverCounted() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.suppliesAccount.AccountID).Return(&suite.suppliesAccount, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.Anything).Return([]domain.AccountActivity{
		{AccountID: suite.suppliesAccount.AccountID, TotalDebit: decimal.NewFromInt(300), TotalCredit: decimal.Zero},
	}, nil).Once()

	_, err := suite.service.CreateSuppliesAdjustment(ctx, dto.SuppliesAdjustmentRequest{
		EntryDate:         suite.entryDate,
		SuppliesAccountID: suite.suppliesAccount.AccountID,
		ExpenseAccountID:  "supplies-expense",
		CountedRemaining:  decimal.NewFromInt(500),
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSuppliesOverCounted)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustingServiceTestSuite) TestCreateSuppliesAdjustment_NegativeCountRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateSuppliesAdjustment(ctx, dto.SuppliesAdjustmentRequest{
		EntryDate:         suite.entryDate,
		SuppliesAccountID: suite.suppliesAccount.AccountID,
		ExpenseAccountID:  "supplies-expense",
		CountedRemaining:  decimal.NewFromInt(-1),
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AdjustingServiceTestSuite) TestAmortizePrepaid_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	prepaid := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "128",
		Name:        "Prepaid Insurance",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, prepaid.AccountID).Return(&prepaid, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.Anything).Return([]domain.AccountActivity{
		{AccountID: prepaid.AccountID, TotalDebit: decimal.NewFromInt(600), TotalCredit: decimal.NewFromInt(100)},
	}, nil).Once()

	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft, EntryType: domain.EntryTypeAdjusting}
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted, EntryType: domain.EntryTypeAdjusting}

	suite.mockJournalSvc.On("RecordEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		if req.EntryType != domain.EntryTypeAdjusting || len(req.Lines) != 2 {
			return false
		}
		return req.Lines[0].AccountID == "insurance-expense" && req.Lines[0].Debit.Equal(decimal.NewFromInt(50)) &&
			req.Lines[1].AccountID == prepaid.AccountID && req.Lines[1].Credit.Equal(decimal.NewFromInt(50))
	}), userID).Return(draft, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, entryID, userID).Return(posted, nil).Once()

	entry, err := suite.service.AmortizePrepaid(ctx, dto.PrepaidAmortizationRequest{
		EntryDate:        suite.entryDate,
		PrepaidAccountID: prepaid.AccountID,
		ExpenseAccountID: "insurance-expense",
		Amount:           decimal.NewFromInt(50),
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *AdjustingServiceTestSuite) TestAmortizePrepaid_ExceedsBalance() {
	ctx := context.Background()
	prepaidID := uuid.NewString()
	prepaid := domain.Account{AccountID: prepaidID, Code: "128", Name: "Prepaid Insurance", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, prepaidID).Return(&prepaid, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.Anything).Return([]domain.AccountActivity{
		{AccountID: prepaidID, TotalDebit: decimal.NewFromInt(200), TotalCredit: decimal.Zero},
	}, nil).Once()

	_, err := suite.service.AmortizePrepaid(ctx, dto.PrepaidAmortizationRequest{
		EntryDate:        suite.entryDate,
		PrepaidAccountID: prepaidID,
		ExpenseAccountID: "insurance-expense",
		Amount:           decimal.NewFromInt(300),
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustingServiceTestSuite) TestRecordDepreciation_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	contra := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "158",
		Name:        "Accumulated Depreciation - Equipment",
		AccountType: domain.ContraAsset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, contra.AccountID).Return(&contra, nil).Once()

	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft, EntryType: domain.EntryTypeAdjusting}
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.Posted, EntryType: domain.EntryTypeAdjusting}

	suite.mockJournalSvc.On("RecordEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		if req.EntryType != domain.EntryTypeAdjusting || len(req.Lines) != 2 {
			return false
		}
		return req.Description == "Depreciation: Equipment" &&
			req.Lines[0].AccountID == "depreciation-expense" && req.Lines[0].Debit.Equal(decimal.NewFromInt(40)) &&
			req.Lines[1].AccountID == contra.AccountID && req.Lines[1].Credit.Equal(decimal.NewFromInt(40))
	}), userID).Return(draft, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, entryID, userID).Return(posted, nil).Once()

	entry, err := suite.service.RecordDepreciation(ctx, dto.DepreciationRequest{
		EntryDate:        suite.entryDate,
		AssetName:        "Equipment",
		ContraAccountID:  contra.AccountID,
		ExpenseAccountID: "depreciation-expense",
		Amount:           decimal.NewFromInt(40),
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *AdjustingServiceTestSuite) TestRecordDepreciation_NotContraAsset() {
	ctx := context.Background()
	equipment := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "157",
		Name:        "Equipment",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, equipment.AccountID).Return(&equipment, nil).Once()

	_, err := suite.service.RecordDepreciation(ctx, dto.DepreciationRequest{
		EntryDate:        suite.entryDate,
		AssetName:        "Equipment",
		ContraAccountID:  equipment.AccountID,
		ExpenseAccountID: "depreciation-expense",
		Amount:           decimal.NewFromInt(40),
	}, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustingServiceTestSuite))
}
