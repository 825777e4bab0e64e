package services

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// StatementService defines operations for deriving financial statements.
// The status parameter scopes which entries feed the report; an empty status
// defaults to posted, drafts may be requested for preview diagnostics.
type StatementService interface {
	// GetIncomeStatement reports revenue less expenses over a date window,
	// excluding closing entries so reported figures survive period close.
	GetIncomeStatement(ctx context.Context, from, to time.Time, status domain.EntryStatus) (*domain.IncomeStatement, error)

	// GetBalanceSheet reports financial position as of a date. Unclosed net
	// income is folded into equity so the equation still balances mid-period.
	GetBalanceSheet(ctx context.Context, asOf time.Time, status domain.EntryStatus) (*domain.BalanceSheet, error)

	// GetCashFlowStatement classifies cash movements into operating,
	// investing and financing sections by their dominant non-cash leg.
	GetCashFlowStatement(ctx context.Context, from, to time.Time, status domain.EntryStatus) (*domain.CashFlowStatement, error)
}
