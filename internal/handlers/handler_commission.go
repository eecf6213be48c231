package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
	"github.com/dsadvance/parcel_ledger_app/internal/middleware"
)

// commissionHandler handles HTTP requests for commission rules and
// quotes.
type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := &commissionHandler{commissionService: commissionService}

	commissions := rg.Group("/commission-rules")
	{
		commissions.POST("", h.createRule)
		commissions.GET("", h.listRules)
		commissions.GET("/quote", h.quote)
	}
}

// createRule godoc
// @Summary Create a commission rule
// @Tags commissions
// @Accept  json
// @Produce  json
// @Param   rule body dto.CreateCommissionRuleRequest true "Rule details"
// @Success 201 {object} domain.CommissionRule
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create commission rule"
// @Security BearerAuth
// @Router /commission-rules [post]
func (h *commissionHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCommissionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCommissionRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.commissionService.CreateRule(c.Request.Context(), req.ToCommissionRule(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create commission rule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create commission rule"})
		}
		return
	}

	logger.Info("Commission rule created", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, rule)
}

// listRules godoc
// @Summary List commission rules
// @Tags commissions
// @Produce  json
// @Success 200 {array} domain.CommissionRule
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list commission rules"
// @Security BearerAuth
// @Router /commission-rules [get]
func (h *commissionHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rules, err := h.commissionService.ListRules(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list commission rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list commission rules"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

// quote godoc
// @Summary Quote a driver commission
// @Description Resolves the most specific matching rule for the driver and action and computes the amount against the booking's fee
// @Tags commissions
// @Produce  json
// @Param   employeeID query string true "Driver employee ID"
// @Param   bookingID query string true "Booking ID"
// @Param   action query string true "PICKUP or DELIVERY"
// @Param   currency query string false "Target currency (default USD)"
// @Success 200 {object} dto.CommissionQuoteResponse
// @Failure 400 {object} map[string]string "Invalid input or employee is not a driver"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee or booking not found"
// @Failure 500 {object} map[string]string "Failed to quote commission"
// @Security BearerAuth
// @Router /commission-rules/quote [get]
func (h *commissionHandler) quote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Query("employeeID")
	bookingID := c.Query("bookingID")
	action := domain.CommissionAction(c.Query("action"))
	currency := c.Query("currency")
	if currency == "" {
		currency = domain.CurrencyUSD
	}
	if employeeID == "" || bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeID and bookingID are required"})
		return
	}
	if action != domain.CommissionPickup && action != domain.CommissionDelivery {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be PICKUP or DELIVERY"})
		return
	}

	amount, err := h.commissionService.Quote(c.Request.Context(), employeeID, bookingID, action, currency)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotADriver):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to quote commission", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote commission"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CommissionQuoteResponse{
		EmployeeID:   employeeID,
		BookingID:    bookingID,
		Action:       action,
		CurrencyCode: currency,
		Amount:       amount,
	})
}
