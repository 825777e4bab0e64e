package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/utils/accounting"
)

func TestSignedBalance(t *testing.T) {
	tests := []struct {
		name        string
		debit       int64
		credit      int64
		accountType domain.AccountType
		want        int64
	}{
		{"asset with debit balance is positive", 500, 200, domain.Asset, 300},
		{"asset dragged into credit balance is negative", 100, 250, domain.Asset, -150},
		{"liability with credit balance is positive", 0, 400, domain.Liability, 400},
		{"revenue with credit balance is positive", 0, 900, domain.Revenue, 900},
		{"expense with debit balance is positive", 120, 0, domain.Expense, 120},
		{"contra asset with credit balance is positive", 0, 75, domain.ContraAsset, 75},
		{"contra revenue with debit balance is positive", 60, 0, domain.ContraRevenue, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedBalance(decimal.NewFromInt(tt.debit), decimal.NewFromInt(tt.credit), tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestSignedBalance_UnknownType(t *testing.T) {
	_, err := accounting.SignedBalance(decimal.NewFromInt(1), decimal.Zero, "GOODWILL")
	assert.Error(t, err)
}

func TestSplitNet(t *testing.T) {
	netDebit, netCredit := accounting.SplitNet(decimal.NewFromInt(75))
	assert.True(t, netDebit.Equal(decimal.NewFromInt(75)))
	assert.True(t, netCredit.IsZero())

	netDebit, netCredit = accounting.SplitNet(decimal.NewFromInt(-40))
	assert.True(t, netDebit.IsZero())
	assert.True(t, netCredit.Equal(decimal.NewFromInt(40)))

	netDebit, netCredit = accounting.SplitNet(decimal.Zero)
	assert.True(t, netDebit.IsZero())
	assert.True(t, netCredit.IsZero())
}

func TestValidateEntryBalance(t *testing.T) {
	balanced := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.NewFromInt(100)},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(balanced))

	assert.ErrorIs(t, accounting.ValidateEntryBalance(nil), apperrors.ErrEmptyEntry)

	unbalanced := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.NewFromInt(90)},
	}
	assert.ErrorIs(t, accounting.ValidateEntryBalance(unbalanced), apperrors.ErrUnbalancedEntry)

	// A two-sided line is a malformed line, not an imbalance: the entry below
	// sums to equal debits and credits yet must still be rejected.
	bothSides := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.Zero},
	}
	err := accounting.ValidateEntryBalance(bothSides)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrUnbalancedEntry)

	negative := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(-100)},
		{AccountID: "b", Credit: decimal.NewFromInt(-100)},
	}
	assert.ErrorIs(t, accounting.ValidateEntryBalance(negative), apperrors.ErrValidation)

	// Sub-tolerance rounding noise passes.
	nearlyBalanced := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromFloat(100.004)},
		{AccountID: "b", Credit: decimal.NewFromInt(100)},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(nearlyBalanced))
}

func TestEquityEffect(t *testing.T) {
	got := accounting.EquityEffect(decimal.NewFromInt(300), decimal.NewFromInt(120))
	assert.True(t, got.Equal(decimal.NewFromInt(180)))
}

func TestStraightLineAmount(t *testing.T) {
	tests := []struct {
		name    string
		cost    string
		salvage string
		months  int
		want    string
		wantErr bool
	}{
		{"even division", "12000", "0", 12, "1000", false},
		{"salvage deducted", "5000", "200", 48, "100", false},
		{"rounds to cents", "1000", "0", 36, "27.78", false},
		{"zero months rejected", "1000", "0", 0, "", true},
		{"negative months rejected", "1000", "0", -6, "", true},
		{"salvage above cost rejected", "1000", "1500", 12, "", true},
		{"negative cost rejected", "-100", "0", 12, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.StraightLineAmount(decimal.RequireFromString(tt.cost), decimal.RequireFromString(tt.salvage), tt.months)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got.String(), tt.want)
		})
	}
}
