package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/core/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockCycleRepo  *MockCycleRepository
	service        portssvc.PeriodSvcFacade
	request        dto.CreatePeriodRequest
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockCycleRepo = new(MockCycleRepository)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockCycleRepo)
	suite.request = dto.CreatePeriodRequest{
		Name:      "April 2025",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_SeedsCycleSteps() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.request.StartDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.request.EndDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(nil).Once()
	suite.mockCycleRepo.On("InitSteps", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(steps []domain.CycleStep) bool {
		if len(steps) != 10 {
			return false
		}
		for _, s := range steps {
			if s.Status != domain.StepPending {
				return false
			}
		}
		return steps[0].Step == domain.StepAnalyze && steps[9].Step == domain.StepScheduleReversal
	})).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, suite.request, userID)

	suite.Require().NoError(err)
	suite.Equal("April 2025", period.Name)
	suite.False(period.IsCurrent)
	suite.False(period.IsClosed)
	suite.Equal(userID, period.CreatedBy)
	suite.mockCycleRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_SetAsCurrent() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.request.SetAsCurrent = true

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(nil).Once()
	suite.mockCycleRepo.On("InitSteps", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]domain.CycleStep")).Return(nil).Once()
	suite.mockPeriodRepo.On("SetCurrentPeriod", ctx, mock.AnythingOfType("string"), userID).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, suite.request, userID)

	suite.Require().NoError(err)
	suite.True(period.IsCurrent)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_InvertedDates() {
	ctx := context.Background()
	suite.request.StartDate, suite.request.EndDate = suite.request.EndDate, suite.request.StartDate

	_, err := suite.service.CreatePeriod(ctx, suite.request, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodDatesInverted)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_OverlapRejected() {
	ctx := context.Background()
	existing := domain.Period{
		PeriodID:  uuid.NewString(),
		Name:      "March-April 2025",
		StartDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.request.StartDate).Return(&existing, nil).Once()

	_, err := suite.service.CreatePeriod(ctx, suite.request, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodOverlap)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestSetCurrentPeriod_ClosedRejected() {
	ctx := context.Background()
	closed := domain.Period{PeriodID: uuid.NewString(), Name: "February 2025", IsClosed: true}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()

	err := suite.service.SetCurrentPeriod(ctx, closed.PeriodID, "user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SetCurrentPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestSetCurrentPeriod_Success() {
	ctx := context.Background()
	open := domain.Period{PeriodID: uuid.NewString(), Name: "April 2025"}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, open.PeriodID).Return(&open, nil).Once()
	suite.mockPeriodRepo.On("SetCurrentPeriod", ctx, open.PeriodID, "user").Return(nil).Once()

	err := suite.service.SetCurrentPeriod(ctx, open.PeriodID, "user")

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestResolvePeriodForDate_NotFound() {
	ctx := context.Background()
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, date).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolvePeriodForDate(ctx, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
