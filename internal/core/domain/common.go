package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// BalanceTolerance absorbs rounding noise when comparing debit and credit
// totals. Two totals that differ by no more than this are considered equal.
var BalanceTolerance = decimal.NewFromFloat(0.005)

// WithinTolerance reports whether d is zero once rounding noise is allowed for.
func WithinTolerance(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(BalanceTolerance)
}
