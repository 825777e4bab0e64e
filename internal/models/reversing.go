package models

import "time"

// ReversingSchedule represents a reversal queue row.
type ReversingSchedule struct {
	ScheduleID         string     `db:"schedule_id"`
	EntryID            string     `db:"entry_id"`
	ReverseOn          time.Time  `db:"reverse_on"`
	DeadlineOn         time.Time  `db:"deadline_on"`
	ReminderOn         time.Time  `db:"reminder_on"`
	Category           string     `db:"category"`
	Status             string     `db:"status"`
	ApprovalRequired   bool       `db:"approval_required"`
	ApprovedBy         string     `db:"approved_by"`
	ApprovedAt         *time.Time `db:"approved_at"`
	AuthorizationLevel int        `db:"authorization_level"`
	ReversalEntryID    *string    `db:"reversal_entry_id"`
	AuditFields
}
