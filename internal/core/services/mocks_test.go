package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, accountType, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, updatedBy string) error {
	args := m.Called(ctx, accountID, active, updatedBy)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

// Ensure MockPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindCurrentPeriod(ctx context.Context) (*domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) SetCurrentPeriod(ctx context.Context, periodID string, updatedBy string) error {
	args := m.Called(ctx, periodID, updatedBy)
	return args.Error(0)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, updatedBy string, closedAt time.Time) error {
	args := m.Called(ctx, periodID, updatedBy, closedAt)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, status *domain.EntryStatus, entryType *domain.EntryType, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, status, entryType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) CountEntriesByStatus(ctx context.Context, periodID string) (map[domain.EntryStatus]int, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EntryStatus]int), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesByTypeAndPeriod(ctx context.Context, entryType domain.EntryType, periodID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, entryType, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, postedAt *time.Time, postedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, postedAt, postedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryLinks(ctx context.Context, entryID string, reversalOf *string, counterOf *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, reversalOf, counterOf, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedNextToken, args.Error(2)
}

// --- Mock ReversingRepository ---
type MockReversingRepository struct {
	mock.Mock
}

// Ensure MockReversingRepository implements portsrepo.ReversingRepositoryFacade
var _ portsrepo.ReversingRepositoryFacade = (*MockReversingRepository)(nil)

func (m *MockReversingRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.ReversingSchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversingSchedule), args.Error(1)
}

func (m *MockReversingRepository) FindScheduleByEntryID(ctx context.Context, entryID string) (*domain.ReversingSchedule, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversingSchedule), args.Error(1)
}

func (m *MockReversingRepository) ListOpenSchedules(ctx context.Context) ([]domain.ReversingSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReversingSchedule), args.Error(1)
}

func (m *MockReversingRepository) ListSchedulesDue(ctx context.Context, asOf time.Time) ([]domain.ReversingSchedule, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReversingSchedule), args.Error(1)
}

func (m *MockReversingRepository) SaveSchedule(ctx context.Context, schedule domain.ReversingSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockReversingRepository) UpdateScheduleStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus, reversalEntryID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, scheduleID, status, reversalEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockReversingRepository) ApproveSchedule(ctx context.Context, scheduleID string, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, scheduleID, approvedBy, approvedAt)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

// Ensure MockReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, filter domain.ActivityFilter) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetCashEntries(ctx context.Context, cashAccountID string, from, to time.Time, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, cashAccountID, from, to, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock AdjustmentRepository ---
type MockAdjustmentRepository struct {
	mock.Mock
}

// Ensure MockAdjustmentRepository implements portsrepo.AdjustmentRepositoryFacade
var _ portsrepo.AdjustmentRepositoryFacade = (*MockAdjustmentRepository)(nil)

func (m *MockAdjustmentRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.AdjustmentRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdjustmentRequest), args.Error(1)
}

func (m *MockAdjustmentRepository) ListRequestsByPeriod(ctx context.Context, periodID string) ([]domain.AdjustmentRequest, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdjustmentRequest), args.Error(1)
}

func (m *MockAdjustmentRepository) ListOpenRequests(ctx context.Context) ([]domain.AdjustmentRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdjustmentRequest), args.Error(1)
}

func (m *MockAdjustmentRepository) SaveRequest(ctx context.Context, request domain.AdjustmentRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) ResolveRequest(ctx context.Context, requestID string, status domain.AdjustmentStatus, entryID *string, resolvedBy string, resolvedOn time.Time) error {
	args := m.Called(ctx, requestID, status, entryID, resolvedBy, resolvedOn)
	return args.Error(0)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

// Ensure MockAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEventsByEntity(ctx context.Context, entityID string, limit int) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}

// --- Mock CycleRepository ---
type MockCycleRepository struct {
	mock.Mock
}

// Ensure MockCycleRepository implements portsrepo.CycleRepositoryFacade
var _ portsrepo.CycleRepositoryFacade = (*MockCycleRepository)(nil)

func (m *MockCycleRepository) ListSteps(ctx context.Context, periodID string) ([]domain.CycleStep, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CycleStep), args.Error(1)
}

func (m *MockCycleRepository) InitSteps(ctx context.Context, periodID string, steps []domain.CycleStep) error {
	args := m.Called(ctx, periodID, steps)
	return args.Error(0)
}

func (m *MockCycleRepository) UpdateStep(ctx context.Context, step domain.CycleStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

// --- MockJournalService ---
type MockJournalService struct {
	mock.Mock
}

// Ensure MockJournalService implements portssvc.JournalSvcFacade
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockJournalService) RecordEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) VoidEntry(ctx context.Context, entryID string, requestingUserID string) error {
	args := m.Called(ctx, entryID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalService) CorrectEntry(ctx context.Context, entryID string, req dto.CorrectEntryRequest, requestingUserID string) (*domain.JournalEntry, *domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, requestingUserID)
	var counter, replacement *domain.JournalEntry
	if args.Get(0) != nil {
		counter = args.Get(0).(*domain.JournalEntry)
	}
	if args.Get(1) != nil {
		replacement = args.Get(1).(*domain.JournalEntry)
	}
	return counter, replacement, args.Error(2)
}
