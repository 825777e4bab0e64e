package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// UpdateCycleStepRequest defines the data for manually updating one step.
type UpdateCycleStepRequest struct {
	Status domain.StepStatus `json:"status" binding:"required,stepstatus"`
	Note   string            `json:"note"`
}

// CycleStepResponse defines the data returned for one cycle step.
type CycleStepResponse struct {
	PeriodID  string            `json:"periodID"`
	Step      int               `json:"step"`
	Name      string            `json:"name"`
	Status    domain.StepStatus `json:"status"`
	Note      string            `json:"note,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToCycleStepResponses converts domain cycle steps to DTOs.
func ToCycleStepResponses(steps []domain.CycleStep) []CycleStepResponse {
	res := make([]CycleStepResponse, len(steps))
	for i, s := range steps {
		res[i] = CycleStepResponse{
			PeriodID:  s.PeriodID,
			Step:      s.Step,
			Name:      s.Name,
			Status:    s.Status,
			Note:      s.Note,
			UpdatedAt: s.UpdatedAt,
		}
	}
	return res
}
