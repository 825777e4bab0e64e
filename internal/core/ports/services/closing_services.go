package services

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// ClosingService defines operations for period close
type ClosingService interface {
	// ClosePeriod generates and posts the closing entries that zero out
	// temporary accounts into capital, then marks the period closed.
	// Idempotent: closing an already closed period is a no-op result.
	ClosePeriod(ctx context.Context, periodID string, req dto.ClosePeriodRequest, requestingUserID string) (*domain.ClosingResult, error)

	// PreviewClose computes what ClosePeriod would post without writing.
	PreviewClose(ctx context.Context, periodID string) (*domain.ClosingResult, error)
}
