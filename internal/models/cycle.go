package models

import "time"

// CycleStep represents one row of a period's cycle checklist.
type CycleStep struct {
	PeriodID  string    `db:"period_id"`
	Step      int       `db:"step"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	Note      string    `db:"note"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AuditEvent represents one append-only audit trail row.
type AuditEvent struct {
	EventID     string    `db:"event_id"`
	Action      string    `db:"action"`
	EntityID    string    `db:"entity_id"`
	Details     string    `db:"details"`
	PerformedBy string    `db:"performed_by"`
	OccurredAt  time.Time `db:"occurred_at"`
}
