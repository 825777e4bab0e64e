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

// adjustingHandler handles HTTP requests for the adjustment workflow.
type adjustingHandler struct {
	adjustingService portssvc.AdjustingSvcFacade
}

func newAdjustingHandler(as portssvc.AdjustingSvcFacade) *adjustingHandler {
	return &adjustingHandler{
		adjustingService: as,
	}
}

// registerAdjustingRoutes registers routes related to adjusting entries.
func registerAdjustingRoutes(rg *gin.RouterGroup, adjustingService portssvc.AdjustingSvcFacade) {
	h := newAdjustingHandler(adjustingService)

	adjustments := rg.Group("/adjustments")
	{
		adjustments.POST("/requests", h.logRequest)
		adjustments.GET("/requests", h.listRequests)
		adjustments.POST("/requests/:id/resolve", h.resolveRequest)
		adjustments.POST("/entries", h.recordAdjustingEntry)
		adjustments.POST("/supplies", h.createSuppliesAdjustment)
		adjustments.POST("/prepaid", h.amortizePrepaid)
		adjustments.POST("/depreciation", h.recordDepreciation)
	}
}

// logRequest godoc
// @Summary Log an adjustment request
// @Description Records that an adjustment is needed for a period without posting anything yet
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateAdjustmentRequestRequest true "Request details"
// @Success 201 {object} dto.AdjustmentRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 500 {object} map[string]string "Failed to log adjustment request"
// @Router /adjustments/requests [post]
func (h *adjustingHandler) logRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdjustmentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("requester_user_id", requesterUserID))

	request, err := h.adjustingService.LogAdjustmentRequest(c.Request.Context(), req, requesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Period not found for adjustment request")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Period closed for adjustment request")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error logging adjustment request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to log adjustment request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log adjustment request"})
		}
		return
	}

	logger.Info("Adjustment request logged", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentRequestResponse(request))
}

// listRequests godoc
// @Summary List adjustment requests for a period
// @Tags adjustments
// @Produce  json
// @Param   periodID query string true "Period ID"
// @Success 200 {array} dto.AdjustmentRequestResponse
// @Failure 400 {object} map[string]string "Missing period ID"
// @Failure 500 {object} map[string]string "Failed to list adjustment requests"
// @Router /adjustments/requests [get]
func (h *adjustingHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Query("periodID")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodID query parameter is required"})
		return
	}

	requests, err := h.adjustingService.ListAdjustmentRequests(c.Request.Context(), periodID)
	if err != nil {
		logger.Error("Failed to list adjustment requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list adjustment requests"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentRequestResponses(requests))
}

// resolveRequest godoc
// @Summary Resolve an adjustment request
// @Description Posts the adjusting entry that satisfies a request, or rejects the request
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   resolution body dto.ResolveAdjustmentRequest true "Resolution, either a rejection or an entry"
// @Success 200 {object} dto.AdjustmentRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already resolved"
// @Failure 500 {object} map[string]string "Failed to resolve adjustment request"
// @Router /adjustments/requests/{id}/resolve [post]
func (h *adjustingHandler) resolveRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.ResolveAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for resolve request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resolverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("resolver_user_id", resolverUserID))

	request, err := h.adjustingService.ResolveAdjustmentRequest(c.Request.Context(), requestID, req, resolverUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Adjustment request not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Adjustment request not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Adjustment request already resolved")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrUnbalancedEntry) || errors.Is(err, apperrors.ErrEmptyEntry) {
			logger.Warn("Validation error resolving adjustment request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve adjustment request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve adjustment request"})
		}
		return
	}

	logger.Info("Adjustment request resolved", slog.String("status", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToAdjustmentRequestResponse(request))
}

// recordAdjustingEntry godoc
// @Summary Record and post an adjusting entry
// @Description Records an entry with adjusting type and posts it immediately
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid, empty or unbalanced entry"
// @Failure 409 {object} map[string]string "Entry date outside an open period"
// @Failure 500 {object} map[string]string "Failed to record adjusting entry"
// @Router /adjustments/entries [post]
func (h *adjustingHandler) recordAdjustingEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjusting entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.adjustingService.RecordAdjustingEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		status := entryErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to record adjusting entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to record adjusting entry"})
		} else {
			logger.Warn("Rejected adjusting entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": err.Error()})
		}
		return
	}

	logger.Info("Adjusting entry recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// createSuppliesAdjustment godoc
// @Summary Create a supplies usage adjustment
// @Description Computes supplies used from the counted remainder and posts the adjusting entry
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.SuppliesAdjustmentRequest true "Supplies count details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid count or no supplies used"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create supplies adjustment"
// @Router /adjustments/supplies [post]
func (h *adjustingHandler) createSuppliesAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SuppliesAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for supplies adjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.adjustingService.CreateSuppliesAdjustment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for supplies adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error in supplies adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create supplies adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplies adjustment"})
		}
		return
	}

	logger.Info("Supplies adjustment recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// amortizePrepaid godoc
// @Summary Amortize a prepaid asset
// @Description Expenses a portion of a prepaid asset and posts the adjusting entry
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   amortization body dto.PrepaidAmortizationRequest true "Amortization details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or amount exceeds prepaid balance"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to amortize prepaid asset"
// @Router /adjustments/prepaid [post]
func (h *adjustingHandler) amortizePrepaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PrepaidAmortizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for prepaid amortization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.adjustingService.AmortizePrepaid(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for prepaid amortization", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error in prepaid amortization", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to amortize prepaid asset", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to amortize prepaid asset"})
		}
		return
	}

	logger.Info("Prepaid amortization recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// recordDepreciation godoc
// @Summary Record periodic depreciation
// @Description Posts depreciation expense against an accumulated depreciation contra account
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   depreciation body dto.DepreciationRequest true "Depreciation details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or account is not a contra asset"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record depreciation"
// @Router /adjustments/depreciation [post]
func (h *adjustingHandler) recordDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for depreciation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.adjustingService.RecordDepreciation(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for depreciation", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error in depreciation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record depreciation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record depreciation"})
		}
		return
	}

	logger.Info("Depreciation recorded", slog.String("entry_id", entry.EntryID), slog.String("asset", req.AssetName))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
