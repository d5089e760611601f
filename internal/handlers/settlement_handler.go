package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guideport/backend/internal/services/settlement"
	"gorm.io/gorm"
)

// SettlementHandler exposes the admin settlement endpoints and the guide
// settlement history endpoint
type SettlementHandler struct {
	Svc *settlement.Service
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(svc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{Svc: svc}
}

// List returns settlements for a month (defaults to the previous month)
func (h *SettlementHandler) List(c *gin.Context) {
	month := settlement.MonthStart(time.Now().AddDate(0, -1, 0))
	if v := c.Query("month"); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
			return
		}
		month = t
	}

	settlements, err := h.Svc.List(month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month.Format("2006-01"), "settlements": settlements})
}

// Aggregate recomputes settlements for a month on demand
func (h *SettlementHandler) Aggregate(c *gin.Context) {
	month := settlement.MonthStart(time.Now().AddDate(0, -1, 0))
	if v := c.Query("month"); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
			return
		}
		month = t
	}

	count, err := h.Svc.AggregateMonth(month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate settlements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month.Format("2006-01"), "aggregated": count})
}

// Confirm approves a pending settlement for payout
func (h *SettlementHandler) Confirm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.Svc.Confirm(id)
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settlement": s})
}

// MarkPaidRequest carries how the settlement was paid out
type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// MarkPaid records payout of a confirmed settlement and stamps its
// commissions as settled
func (h *SettlementHandler) MarkPaid(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_method is required"})
		return
	}

	s, err := h.Svc.MarkPaid(id, req.PaymentMethod)
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settlement": s})
}

// ListMine returns the authenticated guide's settlement history
func (h *SettlementHandler) ListMine(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	settlements, err := h.Svc.ListByGuide(guideID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

func respondSettlementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, settlement.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, settlement.ErrKYCNotApproved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settlement"})
	}
}
