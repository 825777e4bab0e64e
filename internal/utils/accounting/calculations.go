package accounting

import (
	"fmt"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance converts a gross debit/credit pair into one signed balance
// on the account's normal side: positive when the balance sits on the normal
// side, negative otherwise.
func SignedBalance(totalDebit, totalCredit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	net := totalDebit.Sub(totalCredit)
	if accountType.NormalSide() == domain.CreditSide {
		return net.Neg(), nil
	}
	return net, nil
}

// EquityEffect converts a gross debit/credit pair into the account's signed
// contribution under the fully-signed balance sheet convention: debit-normal
// balances positive, credit-normal balances negative. Under this convention
// assets + liabilities + equity is expected to sum to zero.
func EquityEffect(totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	return totalDebit.Sub(totalCredit)
}

// SplitNet splits a net (debit minus credit) balance into the trial balance's
// non-negative net-debit / net-credit pair.
func SplitNet(net decimal.Decimal) (netDebit, netCredit decimal.Decimal) {
	if net.Sign() >= 0 {
		return net, decimal.Zero
	}
	return decimal.Zero, net.Neg()
}

// ValidateEntryBalance checks the double-entry invariant over an entry's
// lines: at least one line, every line carries exactly one positive side, and
// total debits equal total credits within tolerance. Failures wrap the
// apperrors sentinel for their kind: ErrEmptyEntry for a line-less entry,
// ErrValidation for a malformed line, ErrUnbalancedEntry for an imbalance.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: entry has no lines", apperrors.ErrEmptyEntry)
	}
	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line for account %s has a negative amount", apperrors.ErrValidation, l.AccountID)
		}
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return fmt.Errorf("%w: line for account %s must carry exactly one of debit or credit", apperrors.ErrValidation, l.AccountID)
		}
	}
	diff := domain.TotalDebits(lines).Sub(domain.TotalCredits(lines))
	if !domain.WithinTolerance(diff) {
		return fmt.Errorf("%w: debits and credits differ by %s", apperrors.ErrUnbalancedEntry, diff.String())
	}
	return nil
}

// StraightLineAmount computes one period of straight-line depreciation:
// (cost - salvage) / usefulLifeMonths, rounded to cents.
func StraightLineAmount(cost, salvage decimal.Decimal, usefulLifeMonths int) (decimal.Decimal, error) {
	if usefulLifeMonths <= 0 {
		return decimal.Zero, fmt.Errorf("useful life must be at least one month")
	}
	if cost.IsNegative() || salvage.IsNegative() {
		return decimal.Zero, fmt.Errorf("cost and salvage value cannot be negative")
	}
	if salvage.GreaterThan(cost) {
		return decimal.Zero, fmt.Errorf("salvage value %s exceeds cost %s", salvage.String(), cost.String())
	}
	return cost.Sub(salvage).Div(decimal.NewFromInt(int64(usefulLifeMonths))).Round(2), nil
}
