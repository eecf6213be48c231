package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
	"github.com/dsadvance/parcel_ledger_app/internal/middleware"
)

// settingsHandler handles HTTP requests for the named-account mappings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: settingsService}

	settings := rg.Group("/settings")
	{
		settings.GET("/ledger", h.getLedgerSettings)
		settings.PUT("/ledger", h.updateLedgerSettings)
	}
}

// getLedgerSettings godoc
// @Summary Get the ledger account mappings
// @Tags settings
// @Produce  json
// @Success 200 {object} domain.LedgerSettings
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load settings"
// @Security BearerAuth
// @Router /settings/ledger [get]
func (h *settingsHandler) getLedgerSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settings, err := h.settingsService.GetLedgerSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load ledger settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateLedgerSettings godoc
// @Summary Replace the ledger account mappings
// @Description Every non-empty account reference must point at an existing account
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateLedgerSettingsRequest true "Account mappings"
// @Success 200 {object} domain.LedgerSettings
// @Failure 400 {object} map[string]string "Unknown account reference"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save settings"
// @Security BearerAuth
// @Router /settings/ledger [put]
func (h *settingsHandler) updateLedgerSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateLedgerSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLedgerSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.settingsService.UpdateLedgerSettings(c.Request.Context(), req.ToLedgerSettings(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save ledger settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		}
		return
	}

	logger.Info("Ledger settings updated")
	c.JSON(http.StatusOK, settings)
}
