package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
)

// DefaultCashCode is the chart code of the cash account the cash flow
// statement is anchored on.
const DefaultCashCode = "101"

// statementService derives financial statements from reporting aggregates.
type statementService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade

	cashCode string
}

// StatementServiceOption is a functional option for configuring the statement service
type StatementServiceOption func(*statementService)

// WithCashAccountCode overrides the chart code of the cash account.
func WithCashAccountCode(code string) StatementServiceOption {
	return func(s *statementService) {
		s.cashCode = code
	}
}

// NewStatementService creates a new statement service.
func NewStatementService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade, options ...StatementServiceOption) portssvc.StatementService {
	svc := &statementService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		cashCode:      DefaultCashCode,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure statementService implements the StatementService interface
var _ portssvc.StatementService = (*statementService)(nil)

// statementStatus applies the posted default for report scoping.
func statementStatus(status domain.EntryStatus) domain.EntryStatus {
	if status == "" {
		return domain.Posted
	}
	return status
}

// GetIncomeStatement reports revenue less expenses over a window. Closing
// entries are excluded so the report reads the same before and after close.
func (s *statementService) GetIncomeStatement(ctx context.Context, from, to time.Time, status domain.EntryStatus) (*domain.IncomeStatement, error) {
	status = statementStatus(status)
	activities, err := s.reportingRepo.GetAccountActivity(ctx, domain.ActivityFilter{
		From:           &from,
		To:             &to,
		Status:         &status,
		ExcludeClosing: true,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate activity for income statement")
		return nil, fmt.Errorf("failed to aggregate activity: %w", err)
	}

	report := &domain.IncomeStatement{
		From:         from,
		To:           to,
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, act := range activities {
		net := act.NetDebitBalance()
		// Rounding residue within tolerance does not get its own line.
		if domain.WithinTolerance(net) {
			continue
		}
		switch act.AccountType.BaseType() {
		case domain.Revenue:
			// Credit-positive; a contra-revenue balance lands here negative,
			// showing as a deduction among the revenue lines.
			amount := net.Neg()
			report.Revenue = append(report.Revenue, domain.StatementLine{AccountID: act.AccountID, Name: act.Name, Amount: amount})
			report.TotalRevenue = report.TotalRevenue.Add(amount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, domain.StatementLine{AccountID: act.AccountID, Name: act.Name, Amount: net})
			report.TotalExpense = report.TotalExpense.Add(net)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpense)

	s.LogDebug(ctx, "Income statement computed",
		slog.String("net_income", report.NetIncome.String()),
		slog.Int("revenue_lines", len(report.Revenue)),
		slog.Int("expense_lines", len(report.Expenses)))
	return report, nil
}

// GetBalanceSheet reports financial position as of a date. The equation check
// runs under one signed convention (assets positive, liabilities and equity
// negative) and is expected to land within tolerance of zero. Activity on
// temporary accounts not yet closed is folded into equity as unclosed net
// income so the mid-period sheet still balances.
func (s *statementService) GetBalanceSheet(ctx context.Context, asOf time.Time, status domain.EntryStatus) (*domain.BalanceSheet, error) {
	status = statementStatus(status)
	activities, err := s.reportingRepo.GetAccountActivity(ctx, domain.ActivityFilter{
		To:     &asOf,
		Status: &status,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate activity for balance sheet")
		return nil, fmt.Errorf("failed to aggregate activity: %w", err)
	}

	report := &domain.BalanceSheet{
		AsOf:              asOf,
		TotalAssets:       decimal.Zero,
		TotalLiabilities:  decimal.Zero,
		TotalEquity:       decimal.Zero,
		UnclosedNetIncome: decimal.Zero,
		BalanceCheck:      decimal.Zero,
	}

	for _, act := range activities {
		net := act.NetDebitBalance()
		// Signed convention: every account contributes its debit-positive net.
		// Over balanced books the contributions sum to zero.
		report.BalanceCheck = report.BalanceCheck.Add(net)
		if net.IsZero() {
			continue
		}
		if act.AccountType.IsTemporary() {
			// Not yet closed into capital; fold into equity below.
			report.UnclosedNetIncome = report.UnclosedNetIncome.Add(net.Neg())
			continue
		}
		switch act.AccountType.BaseType() {
		case domain.Asset:
			// Contra-assets land here negative, shown as deductions.
			report.Assets = append(report.Assets, domain.StatementLine{AccountID: act.AccountID, Name: act.Name, Amount: net})
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			amount := net.Neg()
			report.Liabilities = append(report.Liabilities, domain.StatementLine{AccountID: act.AccountID, Name: act.Name, Amount: amount})
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case domain.Equity:
			amount := net.Neg()
			report.Equity = append(report.Equity, domain.StatementLine{AccountID: act.AccountID, Name: act.Name, Amount: amount})
			report.TotalEquity = report.TotalEquity.Add(amount)
		}
	}

	if !report.UnclosedNetIncome.IsZero() {
		report.Equity = append(report.Equity, domain.StatementLine{Name: "Net income (unclosed)", Amount: report.UnclosedNetIncome})
		report.TotalEquity = report.TotalEquity.Add(report.UnclosedNetIncome)
	}

	report.EquationOutOfBalance = !domain.WithinTolerance(report.BalanceCheck)
	if report.EquationOutOfBalance {
		s.LogInfo(ctx, "Balance sheet equation out of balance", slog.String("balance_check", report.BalanceCheck.String()))
	}
	return report, nil
}

// GetCashFlowStatement classifies posted cash movements by the dominant
// non-cash leg of each entry: revenue/expense legs are operating, non-cash
// asset legs investing, liability/equity legs financing.
func (s *statementService) GetCashFlowStatement(ctx context.Context, from, to time.Time, status domain.EntryStatus) (*domain.CashFlowStatement, error) {
	status = statementStatus(status)
	cash, err := s.accountRepo.FindAccountByCode(ctx, s.cashCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account (code %s): %w", s.cashCode, err)
	}

	entries, err := s.reportingRepo.GetCashEntries(ctx, cash.AccountID, from, to, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch cash entries")
		return nil, fmt.Errorf("failed to fetch cash entries: %w", err)
	}

	report := &domain.CashFlowStatement{
		From:            from,
		To:              to,
		Sections:        make(map[domain.CashFlowSection][]domain.CashFlowItem),
		Totals:          make(map[domain.CashFlowSection]decimal.Decimal),
		NetChangeInCash: decimal.Zero,
	}
	for _, section := range []domain.CashFlowSection{domain.CashFlowOperating, domain.CashFlowInvesting, domain.CashFlowFinancing} {
		report.Sections[section] = nil
		report.Totals[section] = decimal.Zero
	}

	// Resolve types for every non-cash account the entries touch.
	accountIDs := make([]string, 0)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID != cash.AccountID {
				accountIDs = append(accountIDs, line.AccountID)
			}
		}
	}
	accountsMap := map[string]domain.Account{}
	if len(accountIDs) > 0 {
		accountsMap, err = s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch accounts for cash flow classification")
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}
	}

	for _, entry := range entries {
		cashDelta := decimal.Zero
		var dominant *domain.JournalLine
		dominantSize := decimal.Zero
		for i := range entry.Lines {
			line := entry.Lines[i]
			if line.AccountID == cash.AccountID {
				cashDelta = cashDelta.Add(line.Debit).Sub(line.Credit)
				continue
			}
			size := line.Debit.Add(line.Credit)
			if dominant == nil || size.GreaterThan(dominantSize) {
				dominant = &entry.Lines[i]
				dominantSize = size
			}
		}
		if cashDelta.IsZero() || dominant == nil {
			continue
		}

		section := domain.CashFlowOperating
		if acc, ok := accountsMap[dominant.AccountID]; ok {
			switch acc.AccountType.BaseType() {
			case domain.Asset:
				section = domain.CashFlowInvesting
			case domain.Liability, domain.Equity:
				section = domain.CashFlowFinancing
			}
		}

		item := domain.CashFlowItem{
			EntryID:     entry.EntryID,
			EntryDate:   entry.EntryDate,
			Description: entry.Description,
			Amount:      cashDelta,
			Section:     section,
		}
		report.Sections[section] = append(report.Sections[section], item)
		report.Totals[section] = report.Totals[section].Add(cashDelta)
		report.NetChangeInCash = report.NetChangeInCash.Add(cashDelta)
	}

	for section := range report.Sections {
		items := report.Sections[section]
		sort.Slice(items, func(i, j int) bool { return items[i].EntryDate.Before(items[j].EntryDate) })
	}

	s.LogDebug(ctx, "Cash flow statement computed",
		slog.String("net_change", report.NetChangeInCash.String()),
		slog.Int("entries", len(entries)))
	return report, nil
}
