package models

// Account represents one row of the chart of accounts as persisted.
type Account struct {
	AccountID   string `db:"account_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	NormalSide  string `db:"normal_side"`
	IsPermanent bool   `db:"is_permanent"`
	IsActive    bool   `db:"is_active"`
	Description string `db:"description"`
	AuditFields
}
