package services

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// AdjustingReaderSvc defines read operations for adjustment workflow data
type AdjustingReaderSvc interface {
	// ListAdjustmentRequests retrieves the adjustment requests of a period.
	ListAdjustmentRequests(ctx context.Context, periodID string) ([]domain.AdjustmentRequest, error)
}

// AdjustingWriterSvc defines write operations for the adjustment workflow
type AdjustingWriterSvc interface {
	// LogAdjustmentRequest records an adjustment identified during review but
	// not yet journalized.
	LogAdjustmentRequest(ctx context.Context, req dto.CreateAdjustmentRequestRequest, requestingUserID string) (*domain.AdjustmentRequest, error)

	// ResolveAdjustmentRequest settles an open request, either rejecting it or
	// posting the adjusting entry that satisfies it.
	ResolveAdjustmentRequest(ctx context.Context, requestID string, req dto.ResolveAdjustmentRequest, requestingUserID string) (*domain.AdjustmentRequest, error)

	// RecordAdjustingEntry records and posts an adjusting entry directly.
	RecordAdjustingEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// CreateSuppliesAdjustment derives the supplies-used expense from a
	// physical count and posts the adjusting entry.
	CreateSuppliesAdjustment(ctx context.Context, req dto.SuppliesAdjustmentRequest, creatorUserID string) (*domain.JournalEntry, error)

	// AmortizePrepaid expenses a portion of a prepaid asset and posts the
	// adjusting entry.
	AmortizePrepaid(ctx context.Context, req dto.PrepaidAmortizationRequest, creatorUserID string) (*domain.JournalEntry, error)

	// RecordDepreciation posts periodic depreciation expense against a
	// contra-asset account.
	RecordDepreciation(ctx context.Context, req dto.DepreciationRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// AdjustingSvcFacade combines all adjustment-workflow service interfaces
type AdjustingSvcFacade interface {
	AdjustingReaderSvc
	AdjustingWriterSvc
}
