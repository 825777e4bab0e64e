package repositories

import (
	"context"
	"time"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// AdjustmentReader defines read operations for adjustment request data
type AdjustmentReader interface {
	// FindRequestByID retrieves a specific adjustment request by its identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.AdjustmentRequest, error)

	// ListRequestsByPeriod retrieves all adjustment requests raised for a period.
	ListRequestsByPeriod(ctx context.Context, periodID string) ([]domain.AdjustmentRequest, error)

	// ListOpenRequests retrieves requests still in the requested state.
	ListOpenRequests(ctx context.Context) ([]domain.AdjustmentRequest, error)
}

// AdjustmentWriter defines write operations for adjustment request data
type AdjustmentWriter interface {
	// SaveRequest persists a new adjustment request.
	SaveRequest(ctx context.Context, request domain.AdjustmentRequest) error

	// ResolveRequest marks a request posted or rejected, linking the entry
	// that satisfied it when one was created.
	ResolveRequest(ctx context.Context, requestID string, status domain.AdjustmentStatus, entryID *string, resolvedBy string, resolvedOn time.Time) error
}

// AdjustmentRepositoryFacade combines all adjustment-request repository interfaces
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
}
