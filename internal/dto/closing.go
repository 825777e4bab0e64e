package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosePeriodRequest defines the data needed to run period close.
type ClosePeriodRequest struct {
	ClosingDate time.Time `json:"closingDate" binding:"required" time_format:"2006-01-02"`
	// Force allows closing while open drafts remain; they stay drafts and are
	// excluded from all closed-period figures.
	Force bool `json:"force"`
}

// ClosingResultResponse summarizes the entries the close produced.
type ClosingResultResponse struct {
	PeriodID        string          `json:"periodID"`
	ClosingEntries  []EntryResponse `json:"closingEntries"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	DrawingsClosed  decimal.Decimal `json:"drawingsClosed"`
	AlreadyClosed   bool            `json:"alreadyClosed"`
	AccountsTouched int             `json:"accountsTouched"`
}

// ToClosingResultResponse converts a domain closing result to its DTO.
func ToClosingResultResponse(result *domain.ClosingResult) ClosingResultResponse {
	entries := make([]EntryResponse, len(result.ClosingEntries))
	for i, e := range result.ClosingEntries {
		entries[i] = ToEntryResponse(&e)
	}
	return ClosingResultResponse{
		PeriodID:        result.PeriodID,
		ClosingEntries:  entries,
		NetIncome:       result.NetIncome,
		DrawingsClosed:  result.DrawingsClosed,
		AlreadyClosed:   result.AlreadyClosed,
		AccountsTouched: result.AccountsTouched,
	}
}
