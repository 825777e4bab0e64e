package services

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// TrialBalanceService defines operations for computing trial balances
type TrialBalanceService interface {
	// ComputeTrialBalance aggregates account activity under the filter into a
	// debit/credit balance listing. Defaults: posted entries only, temporary
	// accounts included, scoped to the current period.
	ComputeTrialBalance(ctx context.Context, filter domain.TrialBalanceFilter) (*domain.TrialBalance, error)
}
