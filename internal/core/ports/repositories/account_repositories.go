package repositories

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// AccountReader defines read operations for chart of accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code (e.g. "101").
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by their identifiers.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts, optionally filtered by type and active flag.
	// A nil filter field means "no filter on that field".
	ListAccounts(ctx context.Context, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart of accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable fields of an account (name, description).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive toggles the active flag of an account.
	SetAccountActive(ctx context.Context, accountID string, active bool, updatedBy string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
