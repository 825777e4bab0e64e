package mapping

import (
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/models"
)

// ToModelAdjustmentRequest converts a domain AdjustmentRequest to its model
func ToModelAdjustmentRequest(d domain.AdjustmentRequest) models.AdjustmentRequest {
	return models.AdjustmentRequest{
		RequestID:   d.RequestID,
		PeriodID:    d.PeriodID,
		Description: d.Description,
		Status:      string(d.Status),
		RequestedOn: d.RequestedOn,
		RequestedBy: d.RequestedBy,
		EntryID:     d.EntryID,
		ApprovedBy:  d.ApprovedBy,
		ApprovedOn:  d.ApprovedOn,
		Notes:       d.Notes,
	}
}

// ToDomainAdjustmentRequest converts a model AdjustmentRequest to its domain form
func ToDomainAdjustmentRequest(m models.AdjustmentRequest) domain.AdjustmentRequest {
	return domain.AdjustmentRequest{
		RequestID:   m.RequestID,
		PeriodID:    m.PeriodID,
		Description: m.Description,
		Status:      domain.AdjustmentStatus(m.Status),
		RequestedOn: m.RequestedOn,
		RequestedBy: m.RequestedBy,
		EntryID:     m.EntryID,
		ApprovedBy:  m.ApprovedBy,
		ApprovedOn:  m.ApprovedOn,
		Notes:       m.Notes,
	}
}

// ToDomainAdjustmentRequestSlice converts model requests to domain requests
func ToDomainAdjustmentRequestSlice(ms []models.AdjustmentRequest) []domain.AdjustmentRequest {
	ds := make([]domain.AdjustmentRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdjustmentRequest(m)
	}
	return ds
}

// ToModelCycleStep converts a domain CycleStep to its model
func ToModelCycleStep(d domain.CycleStep) models.CycleStep {
	return models.CycleStep{
		PeriodID:  d.PeriodID,
		Step:      d.Step,
		Name:      d.Name,
		Status:    string(d.Status),
		Note:      d.Note,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainCycleStep converts a model CycleStep to its domain form
func ToDomainCycleStep(m models.CycleStep) domain.CycleStep {
	return domain.CycleStep{
		PeriodID:  m.PeriodID,
		Step:      m.Step,
		Name:      m.Name,
		Status:    domain.StepStatus(m.Status),
		Note:      m.Note,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelAuditEvent converts a domain AuditEvent to its model
func ToModelAuditEvent(d domain.AuditEvent) models.AuditEvent {
	return models.AuditEvent{
		EventID:     d.EventID,
		Action:      d.Action,
		EntityID:    d.EntityID,
		Details:     d.Details,
		PerformedBy: d.PerformedBy,
		OccurredAt:  d.OccurredAt,
	}
}

// ToDomainAuditEvent converts a model AuditEvent to its domain form
func ToDomainAuditEvent(m models.AuditEvent) domain.AuditEvent {
	return domain.AuditEvent{
		EventID:     m.EventID,
		Action:      m.Action,
		EntityID:    m.EntityID,
		Details:     m.Details,
		PerformedBy: m.PerformedBy,
		OccurredAt:  m.OccurredAt,
	}
}
