package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the per-account gross debit/credit aggregate the
// reporting repository returns; all derived reports are built from it.
type AccountActivity struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// NetDebitBalance is the debit-positive net of the activity.
func (a AccountActivity) NetDebitBalance() decimal.Decimal {
	return a.TotalDebit.Sub(a.TotalCredit)
}

// TrialBalanceRow is one account's line in a trial balance. Exactly one of
// NetDebit/NetCredit is non-zero; both are non-negative.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	NormalSide  NormalSide      `json:"normalSide"`
	NetDebit    decimal.Decimal `json:"netDebit"`
	NetCredit   decimal.Decimal `json:"netCredit"`
}

// TrialBalance is a computed snapshot of account balances under a filter.
// OutOfBalance is a diagnostic: a totals mismatch beyond tolerance reflects
// pre-existing data state and is reported, never silently corrected.
type TrialBalance struct {
	Rows         []TrialBalanceRow  `json:"rows"`
	TotalDebit   decimal.Decimal    `json:"totalDebit"`
	TotalCredit  decimal.Decimal    `json:"totalCredit"`
	OutOfBalance bool               `json:"outOfBalance"`
	Filter       TrialBalanceFilter `json:"filter"`
}

// TrialBalanceFilter captures the parameters a trial balance was computed
// under. When ScopeByDateRange is set and a date window is given, period
// scoping is relaxed to support cross-period reporting by explicit window.
type TrialBalanceFilter struct {
	AsOfFrom         *time.Time  `json:"asOfFrom,omitempty"`
	AsOfTo           *time.Time  `json:"asOfTo,omitempty"`
	PeriodID         string      `json:"periodID,omitempty"`
	IncludeTemporary bool        `json:"includeTemporary"`
	StatusFilter     EntryStatus `json:"statusFilter"`
	ScopeByDateRange bool        `json:"scopeByDateRange"`
}

// ActivityFilter scopes the aggregate query the reporting repository runs.
// Nil pointer fields mean "no filter". ExcludeClosing and ExcludeReversing
// drop entries of those types from the aggregate, which income statements
// need so closing entries do not zero out the very numbers being reported.
type ActivityFilter struct {
	From             *time.Time
	To               *time.Time
	PeriodID         string
	AccountIDs       []string
	Status           *EntryStatus
	PermanentOnly    bool
	ExcludeClosing   bool
	ExcludeReversing bool
}

// StatementLine is one account's amount on a financial statement.
type StatementLine struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatement reports revenue less expenses over a window. Contra-revenue
// appears among Revenue lines as a negative deduction.
type IncomeStatement struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Revenue      []StatementLine `json:"revenue"`
	Expenses     []StatementLine `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// BalanceSheet reports financial position under a single signed convention:
// assets positive, liabilities and equity negative, so BalanceCheck is
// expected to be approximately zero. Display sections carry natural-positive
// amounts with contra-assets shown as negative deductions.
type BalanceSheet struct {
	AsOf               time.Time       `json:"asOf"`
	Assets             []StatementLine `json:"assets"`
	Liabilities        []StatementLine `json:"liabilities"`
	Equity             []StatementLine `json:"equity"`
	TotalAssets        decimal.Decimal `json:"totalAssets"`
	TotalLiabilities   decimal.Decimal `json:"totalLiabilities"`
	TotalEquity        decimal.Decimal `json:"totalEquity"`
	UnclosedNetIncome  decimal.Decimal `json:"unclosedNetIncome"` // Temporary-account net folded into equity
	BalanceCheck       decimal.Decimal `json:"balanceCheck"`      // assets + liabilities + equity, signed
	EquationOutOfBalance bool          `json:"equationOutOfBalance"`
}

// CashFlowSection names one classification bucket of the cash flow statement.
type CashFlowSection string

const (
	CashFlowOperating CashFlowSection = "OPERATING"
	CashFlowInvesting CashFlowSection = "INVESTING"
	CashFlowFinancing CashFlowSection = "FINANCING"
)

// CashFlowItem is one cash movement classified by its dominant non-cash leg.
type CashFlowItem struct {
	EntryID     string          `json:"entryID"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Signed: inflow positive
	Section     CashFlowSection `json:"section"`
}

// CashFlowStatement groups cash movements into the three activity sections.
type CashFlowStatement struct {
	From            time.Time                           `json:"from"`
	To              time.Time                           `json:"to"`
	Sections        map[CashFlowSection][]CashFlowItem  `json:"sections"`
	Totals          map[CashFlowSection]decimal.Decimal `json:"totals"`
	NetChangeInCash decimal.Decimal                     `json:"netChangeInCash"`
}
