package models

import "time"

// Period represents an accounting period row.
type Period struct {
	PeriodID  string    `db:"period_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsCurrent bool      `db:"is_current"`
	IsClosed  bool      `db:"is_closed"`
	AuditFields
}
