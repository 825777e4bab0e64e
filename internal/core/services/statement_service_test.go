package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.StatementService
	from              time.Time
	to                time.Time
	cashAccount       domain.Account
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewStatementService(suite.mockReportingRepo, suite.mockAccountRepo)
	suite.from = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.cashAccount = domain.Account{AccountID: uuid.NewString(), Code: "101", Name: "Cash", AccountType: domain.Asset, IsActive: true}
}

func (suite *StatementServiceTestSuite) TestGetIncomeStatement_SignsAndTotals() {
	ctx := context.Background()

	activities := []domain.AccountActivity{
		{AccountID: "cash", Code: "101", Name: "Cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(700), TotalCredit: decimal.NewFromInt(200)},
		{AccountID: "rev", Code: "401", Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(700)},
		{AccountID: "contra-rev", Code: "402", Name: "Sales Discounts", AccountType: domain.ContraRevenue, TotalDebit: decimal.NewFromInt(50), TotalCredit: decimal.Zero},
		{AccountID: "exp", Code: "501", Name: "Rent Expense", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(200), TotalCredit: decimal.Zero},
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.ExcludeClosing && f.From != nil && f.To != nil && f.Status != nil && *f.Status == domain.Posted
	})).Return(activities, nil).Once()

	report, err := suite.service.GetIncomeStatement(ctx, suite.from, suite.to, "")

	suite.Require().NoError(err)
	// Revenue lines are credit-positive; the contra-revenue deduction shows negative.
	suite.Require().Len(report.Revenue, 2)
	suite.True(report.Revenue[0].Amount.Equal(decimal.NewFromInt(700)))
	suite.True(report.Revenue[1].Amount.Equal(decimal.NewFromInt(-50)))
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(650)))
	suite.Require().Len(report.Expenses, 1)
	suite.True(report.TotalExpense.Equal(decimal.NewFromInt(200)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(450)))
}

func (suite *StatementServiceTestSuite) TestGetBalanceSheet_EquationHoldsWithUnclosedIncome() {
	ctx := context.Background()
	asOf := suite.to

	// Assets 500, liabilities 200, equity 100, unclosed net income 200.
	activities := []domain.AccountActivity{
		{AccountID: "cash", Name: "Cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(600), TotalCredit: decimal.NewFromInt(100)},
		{AccountID: "ap", Name: "Accounts Payable", AccountType: domain.Liability, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(200)},
		{AccountID: "capital", Name: "Owner's Capital", AccountType: domain.Equity, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(100)},
		{AccountID: "rev", Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(300)},
		{AccountID: "exp", Name: "Rent Expense", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.To != nil && f.To.Equal(asOf) && f.From == nil
	})).Return(activities, nil).Once()

	report, err := suite.service.GetBalanceSheet(ctx, asOf, "")

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	suite.True(report.UnclosedNetIncome.Equal(decimal.NewFromInt(200)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(300)))
	suite.True(report.BalanceCheck.IsZero())
	suite.False(report.EquationOutOfBalance)

	// The unclosed income surfaces as a synthetic equity line.
	suite.Require().NotEmpty(report.Equity)
	last := report.Equity[len(report.Equity)-1]
	suite.Equal("Net income (unclosed)", last.Name)
	suite.True(last.Amount.Equal(decimal.NewFromInt(200)))
}

func (suite *StatementServiceTestSuite) TestGetBalanceSheet_ContraAssetShownAsDeduction() {
	ctx := context.Background()

	activities := []domain.AccountActivity{
		{AccountID: "equip", Name: "Equipment", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(1000), TotalCredit: decimal.Zero},
		{AccountID: "accum", Name: "Accumulated Depreciation - Equipment", AccountType: domain.ContraAsset, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(150)},
		{AccountID: "capital", Name: "Owner's Capital", AccountType: domain.Equity, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(850)},
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.Anything).Return(activities, nil).Once()

	report, err := suite.service.GetBalanceSheet(ctx, suite.to, "")

	suite.Require().NoError(err)
	suite.Require().Len(report.Assets, 2)
	suite.True(report.Assets[1].Amount.Equal(decimal.NewFromInt(-150)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(850)))
	suite.False(report.EquationOutOfBalance)
}

func (suite *StatementServiceTestSuite) cashEntry(description string, entryDate time.Time, lines []domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   entryDate,
		Description: description,
		Status:      domain.Posted,
		EntryType:   domain.EntryTypeNormal,
		Lines:       lines,
	}
}

func (suite *StatementServiceTestSuite) TestGetCashFlowStatement_ClassifiesByDominantLeg() {
	ctx := context.Background()
	cashID := suite.cashAccount.AccountID

	revenueAccount := domain.Account{AccountID: "rev", AccountType: domain.Revenue}
	equipmentAccount := domain.Account{AccountID: "equip", AccountType: domain.Asset}
	capitalAccount := domain.Account{AccountID: "capital", AccountType: domain.Equity}

	entries := []domain.JournalEntry{
		suite.cashEntry("Fees collected", suite.from.AddDate(0, 0, 2), []domain.JournalLine{
			{AccountID: cashID, Debit: decimal.NewFromInt(500)},
			{AccountID: "rev", Credit: decimal.NewFromInt(500)},
		}),
		suite.cashEntry("Bought equipment", suite.from.AddDate(0, 0, 5), []domain.JournalLine{
			{AccountID: "equip", Debit: decimal.NewFromInt(900)},
			{AccountID: cashID, Credit: decimal.NewFromInt(900)},
		}),
		suite.cashEntry("Owner investment", suite.from.AddDate(0, 0, 1), []domain.JournalLine{
			{AccountID: cashID, Debit: decimal.NewFromInt(2000)},
			{AccountID: "capital", Credit: decimal.NewFromInt(2000)},
		}),
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "101").Return(&suite.cashAccount, nil).Once()
	suite.mockReportingRepo.On("GetCashEntries", ctx, cashID, suite.from, suite.to, domain.Posted).Return(entries, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.Account{
		"rev":     revenueAccount,
		"equip":   equipmentAccount,
		"capital": capitalAccount,
	}, nil).Once()

	report, err := suite.service.GetCashFlowStatement(ctx, suite.from, suite.to, "")

	suite.Require().NoError(err)
	suite.Require().Len(report.Sections[domain.CashFlowOperating], 1)
	suite.True(report.Totals[domain.CashFlowOperating].Equal(decimal.NewFromInt(500)))
	suite.Require().Len(report.Sections[domain.CashFlowInvesting], 1)
	suite.True(report.Totals[domain.CashFlowInvesting].Equal(decimal.NewFromInt(-900)))
	suite.Require().Len(report.Sections[domain.CashFlowFinancing], 1)
	suite.True(report.Totals[domain.CashFlowFinancing].Equal(decimal.NewFromInt(2000)))
	suite.True(report.NetChangeInCash.Equal(decimal.NewFromInt(1600)))
}

func (suite *StatementServiceTestSuite) TestGetCashFlowStatement_CustomCashCode() {
	ctx := context.Background()
	petty := domain.Account{AccountID: uuid.NewString(), Code: "102", Name: "Petty Cash", AccountType: domain.Asset}
	svc := services.NewStatementService(suite.mockReportingRepo, suite.mockAccountRepo, services.WithCashAccountCode("102"))

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "102").Return(&petty, nil).Once()
	suite.mockReportingRepo.On("GetCashEntries", ctx, petty.AccountID, suite.from, suite.to, domain.Posted).Return([]domain.JournalEntry{}, nil).Once()

	report, err := svc.GetCashFlowStatement(ctx, suite.from, suite.to, "")

	suite.Require().NoError(err)
	suite.True(report.NetChangeInCash.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGetIncomeStatement_DraftStatusOverride() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.Status != nil && *f.Status == domain.Draft
	})).Return([]domain.AccountActivity{}, nil).Once()

	_, err := suite.service.GetIncomeStatement(ctx, suite.from, suite.to, domain.Draft)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGetBalanceSheet_DraftStatusOverride() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.Status != nil && *f.Status == domain.Draft
	})).Return([]domain.AccountActivity{}, nil).Once()

	_, err := suite.service.GetBalanceSheet(ctx, suite.to, domain.Draft)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGetCashFlowStatement_DraftStatusOverride() {
	ctx := context.Background()
	cashID := suite.cashAccount.AccountID

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "101").Return(&suite.cashAccount, nil).Once()
	suite.mockReportingRepo.On("GetCashEntries", ctx, cashID, suite.from, suite.to, domain.Draft).Return([]domain.JournalEntry{}, nil).Once()

	_, err := suite.service.GetCashFlowStatement(ctx, suite.from, suite.to, domain.Draft)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGetIncomeStatement_DropsResidueWithinTolerance() {
	ctx := context.Background()

	activities := []domain.AccountActivity{
		{AccountID: "rev", Code: "401", Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(100)},
		{AccountID: "exp", Code: "501", Name: "Rent Expense", AccountType: domain.Expense, TotalDebit: decimal.NewFromFloat(0.005), TotalCredit: decimal.Zero},
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, mock.Anything).Return(activities, nil).Once()

	report, err := suite.service.GetIncomeStatement(ctx, suite.from, suite.to, "")

	suite.Require().NoError(err)
	suite.Require().Len(report.Revenue, 1)
	suite.Empty(report.Expenses)
	suite.True(report.TotalExpense.IsZero())
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
