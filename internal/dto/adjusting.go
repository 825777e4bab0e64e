package dto

import (
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequestRequest defines the data needed to log an adjustment
// that was identified during period review but not yet journalized.
type CreateAdjustmentRequestRequest struct {
	PeriodID    string `json:"periodID" binding:"required"`
	Description string `json:"description" binding:"required"`
	Notes       string `json:"notes"`
}

// ResolveAdjustmentRequest defines how an open adjustment request is settled.
// Reject leaves no entry behind; otherwise an adjusting entry is expected.
type ResolveAdjustmentRequest struct {
	Reject bool                `json:"reject"`
	Entry  *CreateEntryRequest `json:"entry" binding:"omitempty"`
	Notes  string              `json:"notes"`
}

// SuppliesAdjustmentRequest computes the supplies-used adjusting entry from a
// physical count: expense = balance on hand per books minus counted remainder.
type SuppliesAdjustmentRequest struct {
	EntryDate         time.Time       `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	SuppliesAccountID string          `json:"suppliesAccountID" binding:"required"`
	ExpenseAccountID  string          `json:"expenseAccountID" binding:"required"`
	CountedRemaining  decimal.Decimal `json:"countedRemaining"`
	Memo              string          `json:"memo"`
}

// PrepaidAmortizationRequest expenses a portion of a prepaid asset.
type PrepaidAmortizationRequest struct {
	EntryDate        time.Time       `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	PrepaidAccountID string          `json:"prepaidAccountID" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Memo             string          `json:"memo"`
}

// DepreciationRequest records periodic depreciation against a contra-asset
// account. The amount is supplied by the caller; StraightLineAmount helps
// compute it from cost, salvage value and useful life.
type DepreciationRequest struct {
	EntryDate        time.Time       `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	AssetName        string          `json:"assetName" binding:"required"`
	ContraAccountID  string          `json:"contraAccountID" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Memo             string          `json:"memo"`
}

// AdjustmentRequestResponse defines the data returned for an adjustment request.
type AdjustmentRequestResponse struct {
	RequestID   string                  `json:"requestID"`
	PeriodID    string                  `json:"periodID"`
	Description string                  `json:"description"`
	Status      domain.AdjustmentStatus `json:"status"`
	RequestedOn time.Time               `json:"requestedOn"`
	RequestedBy string                  `json:"requestedBy"`
	EntryID     *string                 `json:"entryID,omitempty"`
	ApprovedBy  string                  `json:"approvedBy,omitempty"`
	ApprovedOn  *time.Time              `json:"approvedOn,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
}

// ToAdjustmentRequestResponse converts a domain.AdjustmentRequest to its DTO.
func ToAdjustmentRequestResponse(r *domain.AdjustmentRequest) AdjustmentRequestResponse {
	return AdjustmentRequestResponse{
		RequestID:   r.RequestID,
		PeriodID:    r.PeriodID,
		Description: r.Description,
		Status:      r.Status,
		RequestedOn: r.RequestedOn,
		RequestedBy: r.RequestedBy,
		EntryID:     r.EntryID,
		ApprovedBy:  r.ApprovedBy,
		ApprovedOn:  r.ApprovedOn,
		Notes:       r.Notes,
	}
}

// ToAdjustmentRequestResponses converts a slice of requests to DTOs.
func ToAdjustmentRequestResponses(requests []domain.AdjustmentRequest) []AdjustmentRequestResponse {
	res := make([]AdjustmentRequestResponse, len(requests))
	for i, r := range requests {
		res[i] = ToAdjustmentRequestResponse(&r)
	}
	return res
}
