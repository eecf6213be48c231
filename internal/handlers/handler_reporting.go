package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
	"github.com/dsadvance/parcel_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/trial-balance/export", h.exportTrialBalance)
		reports.GET("/general-ledger/:accountID", h.generalLedger)
		reports.GET("/general-ledger/:accountID/export", h.exportGeneralLedger)
		reports.GET("/net-income", h.netIncome)
		reports.POST("/close-period", h.closePeriod)
	}
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit/credit aggregates with parent rollups; totals must be taken from depth 0 rows only
// @Tags reports
// @Produce  json
// @Param   branchID query string false "Branch filter"
// @Success 200 {array} domain.TrialBalanceRow
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rows, err := h.reportingService.TrialBalance(c.Request.Context(), c.Query("branchID"))
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// exportTrialBalance godoc
// @Summary Export the trial balance as XLSX
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   branchID query string false "Branch filter"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance/export [get]
func (h *reportingHandler) exportTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rows, err := h.reportingService.TrialBalance(c.Request.Context(), c.Query("branchID"))
	if err != nil {
		logger.Error("Failed to compute trial balance for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export trial balance"})
		return
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"
	headers := []string{"Code", "Name", "Type", "Debit", "Credit", "Depth"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		values := []any{row.AccountCode, row.AccountName, string(row.AccountType), row.Debit.InexactFloat64(), row.Credit.InexactFloat64(), row.Depth}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("trial-balance-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write XLSX response", slog.String("error", err.Error()))
	}
}

// generalLedger godoc
// @Summary General ledger for one account
// @Description Date-ordered postings with running balance; credit-normal account types have the displayed balance sign inverted
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} domain.GeneralLedgerLine
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute general ledger"
// @Security BearerAuth
// @Router /reports/general-ledger/{accountID} [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lines, err := h.reportingService.GeneralLedger(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute general ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute general ledger"})
		}
		return
	}
	c.JSON(http.StatusOK, lines)
}

// exportGeneralLedger godoc
// @Summary Export the general ledger of one account as XLSX
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   accountID path string true "Account ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to export general ledger"
// @Security BearerAuth
// @Router /reports/general-ledger/{accountID}/export [get]
func (h *reportingHandler) exportGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	lines, err := h.reportingService.GeneralLedger(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute general ledger for export", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export general ledger"})
		}
		return
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"
	headers := []string{"Date", "Reference", "Description", "Debit", "Credit", "Balance"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, line := range lines {
		values := []any{line.Date.Format("2006-01-02"), line.Reference, line.Description, line.Debit.InexactFloat64(), line.Credit.InexactFloat64(), line.DisplayedBalance.InexactFloat64()}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("general-ledger-%s-%s.xlsx", accountID, time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write XLSX response", slog.String("error", err.Error()))
	}
}

// netIncome godoc
// @Summary Net income
// @Tags reports
// @Produce  json
// @Param   branchID query string false "Branch filter"
// @Success 200 {object} dto.NetIncomeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute net income"
// @Security BearerAuth
// @Router /reports/net-income [get]
func (h *reportingHandler) netIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Query("branchID")
	net, err := h.reportingService.NetIncome(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Failed to compute net income", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net income"})
		return
	}
	c.JSON(http.StatusOK, dto.NetIncomeResponse{BranchID: branchID, NetIncome: net})
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Zeroes Revenue and Expense balances into retained earnings with one closing entry
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   period body dto.ClosePeriodRequest true "Period to close"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or retained earnings unconfigured"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Nothing to close in the period"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /reports/close-period [post]
func (h *reportingHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.reportingService.ClosePeriod(c.Request.Context(), req.Start, req.End, req.BranchID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Nothing to close in the period"})
		default:
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Period closed", slog.String("journal_id", entry.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
