package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
	"github.com/dsadvance/parcel_ledger_app/internal/middleware"
)

// settlementHandler handles HTTP requests for wallet-transaction
// previews and postings.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := &settlementHandler{settlementService: settlementService}

	settlements := rg.Group("/settlements")
	{
		settlements.POST("/preview", h.previewSettlement)
		settlements.POST("", h.createSettlement)
	}
}

// previewSettlement godoc
// @Summary Preview a wallet transaction
// @Description Builds the full set of balanced journal lines a wallet transaction would post, without writing anything
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   settlement body dto.SettlementRequestInput true "Settlement request"
// @Success 200 {object} dto.SettlementPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Referenced employee or booking not found"
// @Failure 500 {object} map[string]string "Failed to build preview"
// @Security BearerAuth
// @Router /settlements/preview [post]
func (h *settlementHandler) previewSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettlementRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	preview, err := h.settlementService.Preview(c.Request.Context(), req.ToSettlementRequest())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to build settlement preview", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build preview"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementPreviewResponse(preview))
}

// createSettlement godoc
// @Summary Post a wallet transaction
// @Description Rebuilds the preview and persists it as a posted journal entry; an invalid preview is rejected
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   settlement body dto.SettlementRequestInput true "Settlement request"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or invalid preview"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Referenced employee or booking not found"
// @Failure 500 {object} map[string]string "Failed to post settlement"
// @Security BearerAuth
// @Router /settlements [post]
func (h *settlementHandler) createSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettlementRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.settlementService.CreateSettlementEntry(c.Request.Context(), req.ToSettlementRequest(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPreview):
			logger.Warn("Rejected invalid settlement preview", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post settlement"})
		}
		return
	}

	logger.Info("Settlement posted", slog.String("journal_id", entry.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
