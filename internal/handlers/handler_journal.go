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

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.recordEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/void", h.voidEntry)
		entries.POST("/:id/correct", h.correctEntry)
	}
}

// entryErrorStatus maps journal service errors to HTTP status codes shared by
// the write endpoints.
func entryErrorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmptyEntry),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrOutsidePeriod),
		errors.Is(err, apperrors.ErrInactiveAccount),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// recordEntry godoc
// @Summary Record a journal entry
// @Description Records a new balanced journal entry in draft status
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid, empty or unbalanced entry"
// @Failure 409 {object} map[string]string "Entry date outside an open period or inactive account"
// @Failure 500 {object} map[string]string "Failed to record entry"
// @Router /entries [post]
func (h *journalHandler) recordEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordEntry", slog.String("error", err.Error()))
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
	logger.Info("Received request to record entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.RecordEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		status := entryErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to record entry in service", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to record entry"})
		} else {
			logger.Warn("Rejected entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": err.Error()})
		}
		return
	}

	logger.Info("Entry recorded successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a page of entries, newest first, with keyset pagination
// @Tags entries
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   entryType query string false "Filter by entry type"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves an entry with its lines
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Moves a draft entry to posted status, making it permanent
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or its period closed"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	posterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("poster_user_id", posterUserID))

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, posterUserID)
	if err != nil {
		status := entryErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to post entry in service", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to post entry"})
		} else {
			logger.Warn("Cannot post entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": err.Error()})
		}
		return
	}

	logger.Info("Entry posted successfully")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a draft entry
// @Description Marks a draft entry void. Posted entries cannot be voided; correct them instead.
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 204 "Entry voided"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to void entry"
// @Router /entries/{id}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	voiderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("voider_user_id", voiderUserID))

	if err := h.journalService.VoidEntry(c.Request.Context(), entryID, voiderUserID); err != nil {
		status := entryErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to void entry in service", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to void entry"})
		} else {
			logger.Warn("Cannot void entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": err.Error()})
		}
		return
	}

	logger.Info("Entry voided successfully")
	c.Status(http.StatusNoContent)
}

// correctEntry godoc
// @Summary Correct a posted entry
// @Description Appends a counter entry that nullifies the original plus a posted replacement. The original is never mutated.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   correction body dto.CorrectEntryRequest true "Replacement entry content"
// @Success 201 {object} dto.CorrectionResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced replacement"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 500 {object} map[string]string "Failed to correct entry"
// @Router /entries/{id}/correct [post]
func (h *journalHandler) correctEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.CorrectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CorrectEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	correctorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("corrector_user_id", correctorUserID))

	counter, replacement, err := h.journalService.CorrectEntry(c.Request.Context(), entryID, req, correctorUserID)
	if err != nil {
		status := entryErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to correct entry in service", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to correct entry"})
		} else {
			logger.Warn("Cannot correct entry", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": err.Error()})
		}
		return
	}

	logger.Info("Entry corrected successfully",
		slog.String("counter_entry_id", counter.EntryID),
		slog.String("replacement_entry_id", replacement.EntryID))
	c.JSON(http.StatusCreated, dto.CorrectionResponse{
		CounterEntry:     dto.ToEntryResponse(counter),
		ReplacementEntry: dto.ToEntryResponse(replacement),
	})
}
