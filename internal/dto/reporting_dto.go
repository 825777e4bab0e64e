package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams defines query parameters for the trial balance report.
type TrialBalanceParams struct {
	From             *time.Time `form:"from" time_format:"2006-01-02"`
	To               *time.Time `form:"to" time_format:"2006-01-02"`
	PeriodID         string     `form:"periodID"`
	IncludeTemporary *bool      `form:"includeTemporary"`
	Status           string     `form:"status"`
	ScopeByDateRange bool       `form:"scopeByDateRange"`
}

// StatementParams defines query parameters for windowed statements. Status
// defaults to posted; drafts may be requested for preview diagnostics.
type StatementParams struct {
	From   time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To     time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	Status string    `form:"status"`
}

// BalanceSheetParams defines query parameters for the balance sheet.
type BalanceSheetParams struct {
	AsOf   time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
	Status string    `form:"status"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	OutOfBalance bool `json:"outOfBalance"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets       decimal.Decimal `json:"totalAssets"`
		TotalLiabilities  decimal.Decimal `json:"totalLiabilities"`
		TotalEquity       decimal.Decimal `json:"totalEquity"`
		UnclosedNetIncome decimal.Decimal `json:"unclosedNetIncome"`
		BalanceCheck      decimal.Decimal `json:"balanceCheck"`
	} `json:"summary"`
	EquationOutOfBalance bool `json:"equationOutOfBalance"`
}

// CashFlowItemResponse represents one classified cash movement.
type CashFlowItemResponse struct {
	EntryID     string          `json:"entryID"`
	EntryDate   string          `json:"entryDate"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowResponse represents the cash flow statement response.
type CashFlowResponse struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Sections map[string][]CashFlowItemResponse `json:"sections"`
	Totals   map[string]decimal.Decimal        `json:"totals"`
	NetChangeInCash decimal.Decimal            `json:"netChangeInCash"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows:         make([]TrialBalanceRowResponse, len(tb.Rows)),
		OutOfBalance: tb.OutOfBalance,
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.Name,
			AccountType: string(row.AccountType),
			Debit:       row.NetDebit,
			Credit:      row.NetCredit,
		}
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	return response
}

func toAccountAmounts(lines []domain.StatementLine) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(lines))
	for i, l := range lines {
		res[i] = AccountAmountResponse{AccountID: l.AccountID, Name: l.Name, Amount: l.Amount}
	}
	return res
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(report *domain.IncomeStatement) IncomeStatementResponse {
	response := IncomeStatementResponse{
		FromDate: report.From.Format("2006-01-02"),
		ToDate:   report.To.Format("2006-01-02"),
		Revenue:  toAccountAmounts(report.Revenue),
		Expenses: toAccountAmounts(report.Expenses),
	}
	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpense
	response.Summary.NetIncome = report.NetIncome
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheet) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:                 report.AsOf.Format("2006-01-02"),
		Assets:               toAccountAmounts(report.Assets),
		Liabilities:          toAccountAmounts(report.Liabilities),
		Equity:               toAccountAmounts(report.Equity),
		EquationOutOfBalance: report.EquationOutOfBalance,
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.UnclosedNetIncome = report.UnclosedNetIncome
	response.Summary.BalanceCheck = report.BalanceCheck
	return response
}

// ToCashFlowResponse converts a domain cash flow statement to a DTO response
func ToCashFlowResponse(report *domain.CashFlowStatement) CashFlowResponse {
	response := CashFlowResponse{
		FromDate:        report.From.Format("2006-01-02"),
		ToDate:          report.To.Format("2006-01-02"),
		Sections:        make(map[string][]CashFlowItemResponse, len(report.Sections)),
		Totals:          make(map[string]decimal.Decimal, len(report.Totals)),
		NetChangeInCash: report.NetChangeInCash,
	}
	for section, items := range report.Sections {
		converted := make([]CashFlowItemResponse, len(items))
		for i, item := range items {
			converted[i] = CashFlowItemResponse{
				EntryID:     item.EntryID,
				EntryDate:   item.EntryDate.Format("2006-01-02"),
				Description: item.Description,
				Amount:      item.Amount,
			}
		}
		response.Sections[string(section)] = converted
	}
	for section, total := range report.Totals {
		response.Totals[string(section)] = total
	}
	return response
}
