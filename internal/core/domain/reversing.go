package domain

import "time"

// ScheduleStatus is the state of a reversing schedule row.
// Transitions: pending -> reminded -> processed | overdue. Overdue rows may
// be retried once approved; processed is terminal.
type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "PENDING"
	ScheduleReminded  ScheduleStatus = "REMINDED"
	ScheduleProcessed ScheduleStatus = "PROCESSED"
	ScheduleOverdue   ScheduleStatus = "OVERDUE"
)

// ScheduleCategory classifies why an entry is scheduled for reversal.
type ScheduleCategory string

const (
	CategoryAccrual    ScheduleCategory = "ACCRUAL"
	CategoryPrepayment ScheduleCategory = "PREPAYMENT"
	CategoryEstimate   ScheduleCategory = "ESTIMATE"
	CategoryOther      ScheduleCategory = "OTHER"
)

// IsValid reports whether c is a known schedule category.
func (c ScheduleCategory) IsValid() bool {
	switch c {
	case CategoryAccrual, CategoryPrepayment, CategoryEstimate, CategoryOther:
		return true
	}
	return false
}

// ReversingSchedule queues an entry for automatic mirror reversal on or after
// ReverseOn, gated by the approval workflow when ApprovalRequired is set.
type ReversingSchedule struct {
	ScheduleID         string           `json:"scheduleID"` // Primary key (UUID)
	EntryID            string           `json:"entryID"`    // Original entry to mirror
	ReverseOn          time.Time        `json:"reverseOn"`
	DeadlineOn         time.Time        `json:"deadlineOn"`
	ReminderOn         time.Time        `json:"reminderOn"`
	Category           ScheduleCategory `json:"category"`
	Status             ScheduleStatus   `json:"status"`
	ApprovalRequired   bool             `json:"approvalRequired"`
	ApprovedBy         string           `json:"approvedBy"`
	ApprovedAt         *time.Time       `json:"approvedAt"`
	AuthorizationLevel int              `json:"authorizationLevel"`
	ReversalEntryID    *string          `json:"reversalEntryID"` // Set once processed
	AuditFields
}

// Approved reports whether the schedule has cleared its approval gate.
func (s ReversingSchedule) Approved() bool {
	return !s.ApprovalRequired || s.ApprovedAt != nil
}

// Due reports whether the schedule should be processed as of the given date.
func (s ReversingSchedule) Due(asOf time.Time) bool {
	return !s.ReverseOn.After(asOf)
}

// ReversingReportRow is one row of the reversing queue report.
type ReversingReportRow struct {
	ScheduleID       string           `json:"scheduleID"`
	EntryID          string           `json:"entryID"`
	EntryDescription string           `json:"entryDescription"`
	EntryDate        time.Time        `json:"entryDate"`
	ReverseOn        time.Time        `json:"reverseOn"`
	DeadlineOn       time.Time        `json:"deadlineOn"`
	Category         ScheduleCategory `json:"category"`
	Status           ScheduleStatus   `json:"status"`
	ApprovalRequired bool             `json:"approvalRequired"`
	DaysUntilDue     int              `json:"daysUntilDue"` // Negative once overdue
}
