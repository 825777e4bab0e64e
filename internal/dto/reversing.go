package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// ScheduleReversalRequest defines the data needed to queue an automatic
// reversal of a posted adjusting entry at the start of the next period.
type ScheduleReversalRequest struct {
	EntryID            string                  `json:"entryID" binding:"required"`
	ReverseOn          time.Time               `json:"reverseOn" binding:"required" time_format:"2006-01-02"`
	DeadlineOn         *time.Time              `json:"deadlineOn" time_format:"2006-01-02"`
	ReminderOn         *time.Time              `json:"reminderOn" time_format:"2006-01-02"`
	Category           domain.ScheduleCategory `json:"category" binding:"omitempty,schedulecategory"`
	ApprovalRequired   bool                    `json:"approvalRequired"`
	AuthorizationLevel int                     `json:"authorizationLevel" binding:"omitempty,min=0,max=3"`
}

// ScheduleResponse defines the data returned for a reversing schedule.
type ScheduleResponse struct {
	ScheduleID         string                  `json:"scheduleID"`
	EntryID            string                  `json:"entryID"`
	ReverseOn          time.Time               `json:"reverseOn"`
	DeadlineOn         time.Time               `json:"deadlineOn"`
	ReminderOn         time.Time               `json:"reminderOn"`
	Category           domain.ScheduleCategory `json:"category"`
	Status             domain.ScheduleStatus   `json:"status"`
	ApprovalRequired   bool                    `json:"approvalRequired"`
	ApprovedBy         string                  `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time              `json:"approvedAt,omitempty"`
	AuthorizationLevel int                     `json:"authorizationLevel"`
	ReversalEntryID    *string                 `json:"reversalEntryID,omitempty"`
}

// ProcessDueResponse summarizes one run over the due reversal queue.
type ProcessDueResponse struct {
	Processed []ScheduleResponse `json:"processed"`
	Skipped   []ScheduleResponse `json:"skipped"` // awaiting approval or already handled
	Overdue   []ScheduleResponse `json:"overdue"`
}

// ToScheduleResponse converts a domain.ReversingSchedule to its DTO.
func ToScheduleResponse(s *domain.ReversingSchedule) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:         s.ScheduleID,
		EntryID:            s.EntryID,
		ReverseOn:          s.ReverseOn,
		DeadlineOn:         s.DeadlineOn,
		ReminderOn:         s.ReminderOn,
		Category:           s.Category,
		Status:             s.Status,
		ApprovalRequired:   s.ApprovalRequired,
		ApprovedBy:         s.ApprovedBy,
		ApprovedAt:         s.ApprovedAt,
		AuthorizationLevel: s.AuthorizationLevel,
		ReversalEntryID:    s.ReversalEntryID,
	}
}

// ToScheduleResponses converts a slice of schedules to DTOs.
func ToScheduleResponses(schedules []domain.ReversingSchedule) []ScheduleResponse {
	res := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		res[i] = ToScheduleResponse(&s)
	}
	return res
}
