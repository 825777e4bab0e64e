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
)

type TrialBalanceServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockPeriodRepo    *MockPeriodRepository
	service           portssvc.TrialBalanceService
	currentPeriod     domain.Period
}

func (suite *TrialBalanceServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewTrialBalanceService(suite.mockReportingRepo, suite.mockPeriodRepo)
	suite.currentPeriod = domain.Period{
		PeriodID:  uuid.NewString(),
		Name:      "March 2025",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		IsCurrent: true,
	}
}

func (suite *TrialBalanceServiceTestSuite) TestComputeTrialBalance_DefaultsToCurrentPeriodAndPosted() {
	ctx := context.Background()

	activities := []domain.AccountActivity{
		{AccountID: "a1", Code: "101", Name: "Cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(900), TotalCredit: decimal.NewFromInt(300)},
		{AccountID: "a2", Code: "401", Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(600)},
	}

	suite.mockPeriodRepo.On("FindCurrentPeriod", ctx).Return(&suite.currentPeriod, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.PeriodID == suite.currentPeriod.PeriodID &&
			f.Status != nil && *f.Status == domain.Posted &&
			f.From == nil && f.To == nil
	})).Return(activities, nil).Once()

	tb, err := suite.service.ComputeTrialBalance(ctx, domain.TrialBalanceFilter{IncludeTemporary: true})

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 2)
	suite.True(tb.Rows[0].NetDebit.Equal(decimal.NewFromInt(600)))
	suite.True(tb.Rows[0].NetCredit.IsZero())
	suite.True(tb.Rows[1].NetDebit.IsZero())
	suite.True(tb.Rows[1].NetCredit.Equal(decimal.NewFromInt(600)))
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit))
	suite.False(tb.OutOfBalance)

	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *TrialBalanceServiceTestSuite) TestComputeTrialBalance_ExplicitPeriodSkipsCurrentLookup() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.PeriodID == periodID
	})).Return([]domain.AccountActivity{}, nil).Once()

	_, err := suite.service.ComputeTrialBalance(ctx, domain.TrialBalanceFilter{PeriodID: periodID, IncludeTemporary: true})

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindCurrentPeriod", mock.Anything)
}

func (suite *TrialBalanceServiceTestSuite) TestComputeTrialBalance_DateWindowOverridesPeriod() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.PeriodID == "" && f.From != nil && f.From.Equal(from) && f.To != nil && f.To.Equal(to)
	})).Return([]domain.AccountActivity{}, nil).Once()

	_, err := suite.service.ComputeTrialBalance(ctx, domain.TrialBalanceFilter{
		AsOfFrom:         &from,
		AsOfTo:           &to,
		ScopeByDateRange: true,
		IncludeTemporary: true,
	})

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindCurrentPeriod", mock.Anything)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *TrialBalanceServiceTestSuite) TestComputeTrialBalance_PermanentOnly() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindCurrentPeriod", ctx).Return(&suite.currentPeriod, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.PermanentOnly
	})).Return([]domain.AccountActivity{}, nil).Once()

	_, err := suite.service.ComputeTrialBalance(ctx, domain.TrialBalanceFilter{IncludeTemporary: false})

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *TrialBalanceServiceTestSuite) TestComputeTrialBalance_OutOfBalanceFlagged() {
	ctx := context.Background()

	activities := []domain.AccountActivity{
		{AccountID: "a1", Code: "101", Name: "Cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.Zero},
		{AccountID: "a2", Code: "401", Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(480)},
	}

	suite.mockPeriodRepo.On("FindCurrentPeriod", ctx).Return(&suite.currentPeriod, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.Anything).Return(activities, nil).Once()

	tb, err := suite.service.ComputeTrialBalance(ctx, domain.TrialBalanceFilter{IncludeTemporary: true})

	suite.Require().NoError(err)
	suite.True(tb.OutOfBalance)
	suite.True(tb.TotalDebit.Sub(tb.TotalCredit).Equal(decimal.NewFromInt(20)))
}

func (suite *TrialBalanceServiceTestSuite) TestComputeTrialBalance_NoCurrentPeriod() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindCurrentPeriod", ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ComputeTrialBalance(ctx, domain.TrialBalanceFilter{IncludeTemporary: true})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetAccountActivity", mock.Anything, mock.Anything)
}

func TestTrialBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TrialBalanceServiceTestSuite))
}
