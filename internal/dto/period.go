package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// CreatePeriodRequest defines the data needed to open a new accounting period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
	SetAsCurrent bool   `json:"setAsCurrent"`
}

// PeriodResponse defines the data returned for a period.
type PeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsCurrent bool      `json:"isCurrent"`
	IsClosed  bool      `json:"isClosed"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToPeriodResponse converts a domain.Period to PeriodResponse DTO
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		IsCurrent: p.IsCurrent,
		IsClosed:  p.IsClosed,
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
}

// ToListPeriodResponse converts a slice of domain.Period to PeriodResponse DTOs
func ToListPeriodResponse(periods []domain.Period) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodResponse(&p)
	}
	return res
}
