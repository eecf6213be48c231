package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
	"github.com/dsadvance/parcel_ledger_app/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries and the
// maker/checker workflow.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournalEntry)
		journals.GET("/:id", h.getJournalEntry)
		journals.GET("", h.listJournalEntries)
		journals.POST("/:id/submit", h.submitJournalEntry)
		journals.POST("/:id/approve", h.approveJournalEntry)
		journals.POST("/:id/reject", h.rejectJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Creates a manually entered journal entry; non-draft entries must balance
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalEntryRequest true "Journal entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create journal entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}

	logger.Info("Journal entry created successfully", slog.String("journal_id", entry.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry by ID
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Tags journals
// @Produce  json
// @Param   branchID query string false "Branch filter"
// @Param   status query string false "Status filter"
// @Param   from query string false "Start date (RFC3339)"
// @Param   to query string false "End date (RFC3339)"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid date filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := portsrepo.JournalFilter{
		BranchID: c.Query("branchID"),
		Status:   domain.JournalStatus(c.Query("status")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date: " + err.Error()})
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date: " + err.Error()})
			return
		}
		filter.To = t
	}

	entries, err := h.journalService.ListJournalEntries(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list journal entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// submitJournalEntry godoc
// @Summary Submit a draft journal entry for approval
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Entry not in draft or unbalanced"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to submit journal entry"
// @Security BearerAuth
// @Router /journals/{id}/submit [post]
func (h *journalHandler) submitJournalEntry(c *gin.Context) {
	h.transition(c, func(journalID, userID string) error {
		return h.journalService.SubmitJournalEntry(c.Request.Context(), journalID, userID)
	})
}

// approveJournalEntry godoc
// @Summary Approve a pending journal entry
// @Description Posts a pending entry; the approver must differ from the creator
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Entry not pending approval"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Self-approval forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to approve journal entry"
// @Security BearerAuth
// @Router /journals/{id}/approve [post]
func (h *journalHandler) approveJournalEntry(c *gin.Context) {
	h.transition(c, func(journalID, userID string) error {
		return h.journalService.ApproveJournalEntry(c.Request.Context(), journalID, userID)
	})
}

// rejectJournalEntry godoc
// @Summary Reject a pending journal entry
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   rejection body dto.RejectJournalEntryRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Entry not pending approval"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Self-rejection forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to reject journal entry"
// @Security BearerAuth
// @Router /journals/{id}/reject [post]
func (h *journalHandler) rejectJournalEntry(c *gin.Context) {
	var req dto.RejectJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.transition(c, func(journalID, userID string) error {
		return h.journalService.RejectJournalEntry(c.Request.Context(), journalID, userID, req.Reason)
	})
}

func (h *journalHandler) transition(c *gin.Context, fn func(journalID, userID string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := fn(journalID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Journal status transition failed", slog.String("journal_id", journalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update journal entry"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
