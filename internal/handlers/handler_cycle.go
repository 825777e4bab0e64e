package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
	"github.com/openbooks/bookkeeping_engine/internal/middleware"
)

// cycleHandler handles HTTP requests for the accounting cycle checklist.
type cycleHandler struct {
	cycleService portssvc.CycleService
}

func newCycleHandler(cs portssvc.CycleService) *cycleHandler {
	return &cycleHandler{
		cycleService: cs,
	}
}

// registerCycleRoutes registers routes related to the cycle checklist.
func registerCycleRoutes(rg *gin.RouterGroup, cycleService portssvc.CycleService) {
	h := newCycleHandler(cycleService)

	cycle := rg.Group("/periods/:id/cycle")
	{
		cycle.GET("", h.getCycleStatus)
		cycle.PUT("/:step", h.updateStep)
		cycle.POST("/:step/advance", h.advanceTo)
	}
}

func stepParam(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("step"))
}

// getCycleStatus godoc
// @Summary Get the cycle checklist for a period
// @Tags cycle
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {array} dto.CycleStepResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve cycle status"
// @Router /periods/{id}/cycle [get]
func (h *cycleHandler) getCycleStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	steps, err := h.cycleService.GetCycleStatus(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found for cycle status", slog.String("period_id", periodID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to get cycle status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cycle status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCycleStepResponses(steps))
}

// updateStep godoc
// @Summary Update one cycle step
// @Tags cycle
// @Accept  json
// @Produce  json
// @Param   id path string true "Period ID"
// @Param   step path int true "Step number (1-10)"
// @Param   update body dto.UpdateCycleStepRequest true "New status and optional note"
// @Success 200 {object} dto.CycleStepResponse
// @Failure 400 {object} map[string]string "Invalid step or status"
// @Failure 404 {object} map[string]string "Step not found"
// @Failure 500 {object} map[string]string "Failed to update step"
// @Router /periods/{id}/cycle/{step} [put]
func (h *cycleHandler) updateStep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	step, err := stepParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step number"})
		return
	}

	var req dto.UpdateCycleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStep", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("period_id", periodID), slog.Int("step", step), slog.String("updater_user_id", updaterUserID))

	updated, err := h.cycleService.UpdateStep(c.Request.Context(), periodID, step, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Cycle step not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating step", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update cycle step", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update step"})
		}
		return
	}

	logger.Info("Cycle step updated", slog.String("status", string(updated.Status)))
	c.JSON(http.StatusOK, dto.ToCycleStepResponses([]domain.CycleStep{*updated})[0])
}

// advanceTo godoc
// @Summary Advance the cycle to a step
// @Description Marks earlier pending steps completed and the target step in progress
// @Tags cycle
// @Produce  json
// @Param   id path string true "Period ID"
// @Param   step path int true "Target step number (1-10)"
// @Success 200 {array} dto.CycleStepResponse
// @Failure 400 {object} map[string]string "Invalid step"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to advance cycle"
// @Router /periods/{id}/cycle/{step}/advance [post]
func (h *cycleHandler) advanceTo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	step, err := stepParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step number"})
		return
	}

	advancerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("period_id", periodID), slog.Int("step", step), slog.String("advancer_user_id", advancerUserID))

	steps, err := h.cycleService.AdvanceTo(c.Request.Context(), periodID, step, advancerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found for cycle advance")
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error advancing cycle", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to advance cycle", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance cycle"})
		}
		return
	}

	logger.Info("Cycle advanced")
	c.JSON(http.StatusOK, dto.ToCycleStepResponses(steps))
}
