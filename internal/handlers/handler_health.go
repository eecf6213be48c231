package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/middleware"
)

// healthHandler exposes the read-only ledger integrity scan.
type healthHandler struct {
	healthService portssvc.HealthSvcFacade
}

func registerHealthRoutes(rg *gin.RouterGroup, healthService portssvc.HealthSvcFacade) {
	h := &healthHandler{healthService: healthService}
	rg.GET("/ledger-health", h.scan)
}

// scan godoc
// @Summary Ledger integrity scan
// @Description Reports duplicate account codes, unposted documents, unbalanced or empty posted entries, and postings against missing accounts. Findings are diagnostics only; nothing is repaired.
// @Tags health
// @Produce  json
// @Success 200 {array} domain.HealthIssue
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to scan ledger"
// @Security BearerAuth
// @Router /ledger-health [get]
func (h *healthHandler) scan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	issues, err := h.healthService.Scan(c.Request.Context())
	if err != nil {
		logger.Error("Failed to scan ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan ledger"})
		return
	}
	c.JSON(http.StatusOK, issues)
}
