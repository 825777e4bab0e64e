package mapping

import (
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/models"
)

// ToModelReversingSchedule converts a domain ReversingSchedule to its model
func ToModelReversingSchedule(d domain.ReversingSchedule) models.ReversingSchedule {
	return models.ReversingSchedule{
		ScheduleID:         d.ScheduleID,
		EntryID:            d.EntryID,
		ReverseOn:          d.ReverseOn,
		DeadlineOn:         d.DeadlineOn,
		ReminderOn:         d.ReminderOn,
		Category:           string(d.Category),
		Status:             string(d.Status),
		ApprovalRequired:   d.ApprovalRequired,
		ApprovedBy:         d.ApprovedBy,
		ApprovedAt:         d.ApprovedAt,
		AuthorizationLevel: d.AuthorizationLevel,
		ReversalEntryID:    d.ReversalEntryID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReversingSchedule converts a model ReversingSchedule to its domain form
func ToDomainReversingSchedule(m models.ReversingSchedule) domain.ReversingSchedule {
	return domain.ReversingSchedule{
		ScheduleID:         m.ScheduleID,
		EntryID:            m.EntryID,
		ReverseOn:          m.ReverseOn,
		DeadlineOn:         m.DeadlineOn,
		ReminderOn:         m.ReminderOn,
		Category:           domain.ScheduleCategory(m.Category),
		Status:             domain.ScheduleStatus(m.Status),
		ApprovalRequired:   m.ApprovalRequired,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		AuthorizationLevel: m.AuthorizationLevel,
		ReversalEntryID:    m.ReversalEntryID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReversingScheduleSlice converts model schedules to domain schedules
func ToDomainReversingScheduleSlice(ms []models.ReversingSchedule) []domain.ReversingSchedule {
	ds := make([]domain.ReversingSchedule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReversingSchedule(m)
	}
	return ds
}
