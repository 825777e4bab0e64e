package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
	"github.com/openbooks/bookkeeping_engine/internal/middleware"
)

// closingHandler handles HTTP requests for period close.
type closingHandler struct {
	closingService portssvc.ClosingService
}

func newClosingHandler(cs portssvc.ClosingService) *closingHandler {
	return &closingHandler{
		closingService: cs,
	}
}

// registerClosingRoutes registers routes related to closing a period.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingService) {
	h := newClosingHandler(closingService)

	periods := rg.Group("/periods")
	{
		periods.GET("/:id/close/preview", h.previewClose)
		periods.POST("/:id/close", h.closePeriod)
	}
}

// previewClose godoc
// @Summary Preview closing a period
// @Description Computes the closing entries and net income without posting anything
// @Tags closing
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.ClosingResultResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to preview close"
// @Router /periods/{id}/close/preview [get]
func (h *closingHandler) previewClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	result, err := h.closingService.PreviewClose(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found for close preview", slog.String("period_id", periodID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to preview close", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview close"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingResultResponse(result))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Zeroes temporary accounts into capital, closes drawings, and locks the period. Idempotent.
// @Tags closing
// @Accept  json
// @Produce  json
// @Param   id path string true "Period ID"
// @Param   close body dto.ClosePeriodRequest true "Closing date and options"
// @Success 200 {object} dto.ClosingResultResponse
// @Failure 400 {object} map[string]string "Invalid input or closing date outside the period"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Draft entries remain in the period"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /periods/{id}/close [post]
func (h *closingHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	closerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("period_id", periodID), slog.String("closer_user_id", closerUserID))
	logger.Info("Received request to close period")

	result, err := h.closingService.ClosePeriod(c.Request.Context(), periodID, req, closerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found for close")
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrPeriodNotReady) {
			logger.Warn("Period not ready to close", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error closing period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	if result.AlreadyClosed {
		logger.Info("Period was already closed")
	} else {
		logger.Info("Period closed successfully", slog.String("net_income", result.NetIncome.String()))
	}
	c.JSON(http.StatusOK, dto.ToClosingResultResponse(result))
}
