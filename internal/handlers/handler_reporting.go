package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
	"github.com/openbooks/bookkeeping_engine/internal/middleware"
)

// reportingHandler handles HTTP requests for the trial balance and the
// financial statements.
type reportingHandler struct {
	trialBalanceService portssvc.TrialBalanceService
	statementService    portssvc.StatementService
}

func newReportingHandler(tb portssvc.TrialBalanceService, st portssvc.StatementService) *reportingHandler {
	return &reportingHandler{
		trialBalanceService: tb,
		statementService:    st,
	}
}

// registerReportingRoutes registers routes for reports and statements.
func registerReportingRoutes(rg *gin.RouterGroup, tb portssvc.TrialBalanceService, st portssvc.StatementService) {
	h := newReportingHandler(tb, st)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// getTrialBalance godoc
// @Summary Compute a trial balance
// @Description Sums posted activity per account; defaults to the current period when no date window is given
// @Tags reports
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Param   includeTemporary query bool false "Include temporary accounts" default(true)
// @Param   status query string false "Entry status to include" default(POSTED)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.TrialBalanceFilter{
		AsOfFrom:         params.From,
		AsOfTo:           params.To,
		PeriodID:         params.PeriodID,
		IncludeTemporary: true,
		StatusFilter:     domain.EntryStatus(params.Status),
		ScopeByDateRange: params.ScopeByDateRange || (params.From != nil && params.To != nil),
	}
	if params.IncludeTemporary != nil {
		filter.IncludeTemporary = *params.IncludeTemporary
	}

	tb, err := h.trialBalanceService.ComputeTrialBalance(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error computing trial balance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getIncomeStatement godoc
// @Summary Compute an income statement
// @Description Revenue less expenses over a date window; closing entries are excluded
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   status query string false "Entry status to include" default(POSTED)
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute income statement"
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.statementService.GetIncomeStatement(c.Request.Context(), params.From, params.To, domain.EntryStatus(params.Status))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error computing income statement", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute income statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet godoc
// @Summary Compute a balance sheet
// @Description Assets, liabilities and equity as of a date, including unclosed net income
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Param   status query string false "Entry status to include" default(POSTED)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute balance sheet"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.statementService.GetBalanceSheet(c.Request.Context(), params.AsOf, domain.EntryStatus(params.Status))
	if err != nil {
		logger.Error("Failed to compute balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getCashFlow godoc
// @Summary Compute a cash flow statement
// @Description Classifies cash movements into operating, investing and financing activities
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   status query string false "Entry status to include" default(POSTED)
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute cash flow statement"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.statementService.GetCashFlowStatement(c.Request.Context(), params.From, params.To, domain.EntryStatus(params.Status))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Cash account not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute cash flow statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cash flow statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}
