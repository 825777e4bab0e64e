package models

import "time"

// AdjustmentRequest represents an adjustment workflow row.
type AdjustmentRequest struct {
	RequestID   string     `db:"request_id"`
	PeriodID    string     `db:"period_id"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	RequestedOn time.Time  `db:"requested_on"`
	RequestedBy string     `db:"requested_by"`
	EntryID     *string    `db:"entry_id"`
	ApprovedBy  string     `db:"approved_by"`
	ApprovedOn  *time.Time `db:"approved_on"`
	Notes       string     `db:"notes"`
}
