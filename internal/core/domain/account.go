package domain

// AccountType defines the fundamental accounting type of an account.
// The set is closed: downstream sign math switches exhaustively over it.
type AccountType string

const (
	Asset         AccountType = "ASSET"
	Liability     AccountType = "LIABILITY"
	Equity        AccountType = "EQUITY"
	Revenue       AccountType = "REVENUE"
	Expense       AccountType = "EXPENSE"
	ContraAsset   AccountType = "CONTRA_ASSET"
	ContraRevenue AccountType = "CONTRA_REVENUE"
)

// NormalSide is the side on which an account type ordinarily carries a
// positive balance.
type NormalSide string

const (
	DebitSide  NormalSide = "DEBIT"
	CreditSide NormalSide = "CREDIT"
)

// IsValid reports whether t is one of the closed set of account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, ContraAsset, ContraRevenue:
		return true
	}
	return false
}

// BaseType returns the category a contra account offsets. Non-contra types
// return themselves.
func (t AccountType) BaseType() AccountType {
	switch t {
	case ContraAsset:
		return Asset
	case ContraRevenue:
		return Revenue
	default:
		return t
	}
}

// IsContra reports whether t offsets a related account's normal side.
func (t AccountType) IsContra() bool {
	return t == ContraAsset || t == ContraRevenue
}

// NormalSide derives the account type's normal balance side. Assets and
// expenses are debit-normal; liabilities, equity and revenue are
// credit-normal; contra types take the opposite side of their base type.
func (t AccountType) NormalSide() NormalSide {
	base := t.BaseType()
	var side NormalSide
	switch base {
	case Asset, Expense:
		side = DebitSide
	default:
		side = CreditSide
	}
	if t.IsContra() {
		if side == DebitSide {
			return CreditSide
		}
		return DebitSide
	}
	return side
}

// IsTemporary reports whether accounts of this type are zeroed into equity at
// period close. Revenue, expense and their contra types are temporary.
func (t AccountType) IsTemporary() bool {
	switch t.BaseType() {
	case Revenue, Expense:
		return true
	}
	return false
}

// Account represents one row of the chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary key (UUID)
	Code        string      `json:"code"`        // Unique, orders reports
	Name        string      `json:"name"`        // User-facing name
	AccountType AccountType `json:"accountType"` // Closed enum, see above
	NormalSide  NormalSide  `json:"normalSide"`  // Always derived from AccountType
	IsPermanent bool        `json:"isPermanent"` // Balance-sheet account, survives closing
	IsActive    bool        `json:"isActive"`    // Soft delete / status flag
	Description string      `json:"description"`
	AuditFields
}
