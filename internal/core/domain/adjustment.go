package domain

import "time"

// AdjustmentStatus is the workflow state of an adjustment request.
type AdjustmentStatus string

const (
	AdjustmentRequested AdjustmentStatus = "REQUESTED"
	AdjustmentPosted    AdjustmentStatus = "POSTED"
	AdjustmentRejected  AdjustmentStatus = "REJECTED"
)

// AdjustmentRequest records a period-end adjustment awaiting an adjusting
// entry, with approval metadata once linked.
type AdjustmentRequest struct {
	RequestID   string           `json:"requestID"` // Primary key (UUID)
	PeriodID    string           `json:"periodID"`
	Description string           `json:"description"`
	Status      AdjustmentStatus `json:"status"`
	RequestedOn time.Time        `json:"requestedOn"`
	RequestedBy string           `json:"requestedBy"`
	EntryID     *string          `json:"entryID"` // Adjusting entry, once linked
	ApprovedBy  string           `json:"approvedBy"`
	ApprovedOn  *time.Time       `json:"approvedOn"`
	Notes       string           `json:"notes"`
}
