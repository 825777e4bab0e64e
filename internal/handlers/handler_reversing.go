package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
	"github.com/openbooks/bookkeeping_engine/internal/middleware"
)

// reversingHandler handles HTTP requests for the reversal queue.
type reversingHandler struct {
	reversingService portssvc.ReversingSvcFacade
}

func newReversingHandler(rs portssvc.ReversingSvcFacade) *reversingHandler {
	return &reversingHandler{
		reversingService: rs,
	}
}

// registerReversingRoutes registers routes related to reversing entries.
func registerReversingRoutes(rg *gin.RouterGroup, reversingService portssvc.ReversingSvcFacade) {
	h := newReversingHandler(reversingService)

	reversals := rg.Group("/reversals")
	{
		reversals.POST("", h.scheduleReversal)
		reversals.GET("", h.listOpenSchedules)
		reversals.GET("/report", h.getReport)
		reversals.GET("/:id", h.getSchedule)
		reversals.POST("/:id/approve", h.approveSchedule)
		reversals.POST("/process-due", h.processDue)
	}
}

// asOfOrNow parses an optional asOf query parameter, defaulting to now.
func asOfOrNow(c *gin.Context) (time.Time, error) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// scheduleReversal godoc
// @Summary Schedule a reversing entry
// @Description Queues an automatic reversal of a posted adjusting entry for a future date
// @Tags reversals
// @Accept  json
// @Produce  json
// @Param   schedule body dto.ScheduleReversalRequest true "Schedule details"
// @Success 201 {object} dto.ScheduleResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already scheduled or not a posted adjusting entry"
// @Failure 500 {object} map[string]string "Failed to schedule reversal"
// @Router /reversals [post]
func (h *reversingHandler) scheduleReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ScheduleReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ScheduleReversal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	schedulerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", req.EntryID), slog.String("scheduler_user_id", schedulerUserID))

	schedule, err := h.reversingService.ScheduleReversal(c.Request.Context(), req, schedulerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found for reversal schedule")
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Cannot schedule reversal", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error scheduling reversal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to schedule reversal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule reversal"})
		}
		return
	}

	logger.Info("Reversal scheduled", slog.String("schedule_id", schedule.ScheduleID))
	c.JSON(http.StatusCreated, dto.ToScheduleResponse(schedule))
}

// listOpenSchedules godoc
// @Summary List open reversal schedules
// @Tags reversals
// @Produce  json
// @Success 200 {array} dto.ScheduleResponse
// @Failure 500 {object} map[string]string "Failed to list schedules"
// @Router /reversals [get]
func (h *reversingHandler) listOpenSchedules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	schedules, err := h.reversingService.ListOpenSchedules(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list open schedules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list schedules"})
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponses(schedules))
}

// getSchedule godoc
// @Summary Get a reversal schedule by ID
// @Tags reversals
// @Produce  json
// @Param   id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Failure 500 {object} map[string]string "Failed to retrieve schedule"
// @Router /reversals/{id} [get]
func (h *reversingHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scheduleID := c.Param("id")

	schedule, err := h.reversingService.GetScheduleByID(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Schedule not found", slog.String("schedule_id", scheduleID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			logger.Error("Failed to get schedule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

// approveSchedule godoc
// @Summary Approve a reversal schedule
// @Description Records approval for a schedule that requires it before processing
// @Tags reversals
// @Produce  json
// @Param   id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Failure 409 {object} map[string]string "Schedule already processed"
// @Failure 500 {object} map[string]string "Failed to approve schedule"
// @Router /reversals/{id}/approve [post]
func (h *reversingHandler) approveSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scheduleID := c.Param("id")

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("schedule_id", scheduleID), slog.String("approver_user_id", approverUserID))

	schedule, err := h.reversingService.ApproveSchedule(c.Request.Context(), scheduleID, approverUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Schedule not found for approval")
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Cannot approve schedule", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to approve schedule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve schedule"})
		}
		return
	}

	logger.Info("Schedule approved")
	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

// processDue godoc
// @Summary Process due reversal schedules
// @Description Posts reversing entries for approved schedules due as of the given date, marks reminders and overdue schedules
// @Tags reversals
// @Produce  json
// @Param   asOf query string false "Processing date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ProcessDueResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 500 {object} map[string]string "Failed to process due schedules"
// @Router /reversals/process-due [post]
func (h *reversingHandler) processDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := asOfOrNow(c)
	if err != nil {
		logger.Warn("Invalid asOf date", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + err.Error()})
		return
	}

	processorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("processor_user_id", processorUserID), slog.Time("as_of", asOf))
	logger.Info("Received request to process due reversals")

	result, err := h.reversingService.ProcessDue(c.Request.Context(), asOf, processorUserID)
	if err != nil {
		logger.Error("Failed to process due schedules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process due schedules"})
		return
	}

	logger.Info("Processed due reversals",
		slog.Int("processed", len(result.Processed)),
		slog.Int("overdue", len(result.Overdue)))
	c.JSON(http.StatusOK, result)
}

// getReport godoc
// @Summary Reversal queue report
// @Description Lists open schedules with their owning entries and days until due
// @Tags reversals
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.ReversingReportRow
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reversals/report [get]
func (h *reversingHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := asOfOrNow(c)
	if err != nil {
		logger.Warn("Invalid asOf date", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + err.Error()})
		return
	}

	report, err := h.reversingService.GetReversingReport(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build reversing report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
