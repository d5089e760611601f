package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guideport/backend/internal/services/commission"
)

// CommissionHandler exposes the guide portal commission endpoints
type CommissionHandler struct {
	Svc *commission.Service
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(svc *commission.Service) *CommissionHandler {
	return &CommissionHandler{Svc: svc}
}

// Dashboard returns the guide's earnings summary
func (h *CommissionHandler) Dashboard(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	summary, err := h.Svc.Dashboard(c.Request.Context(), guideID)
	if err != nil {
		notFoundOrInternal(c, err, "guide")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": summary})
}

// List returns the guide's commission records, newest first
func (h *CommissionHandler) List(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	commissions, err := h.Svc.ListByGuide(guideID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list commissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"commissions": commissions})
}

// Tiers returns the commission tier table
func (h *CommissionHandler) Tiers(c *gin.Context) {
	tiers, err := h.Svc.Tiers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tiers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}

// ExportCSV streams the guide's commission history as a CSV download.
// The file is prefixed with a UTF-8 BOM so Excel opens it cleanly.
func (h *CommissionHandler) ExportCSV(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	commissions, err := h.Svc.ListByGuide(guideID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list commissions"})
		return
	}

	filename := fmt.Sprintf("commissions_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"date", "type", "order amount", "rate", "commission amount", "bonus", "status"})
	for _, comm := range commissions {
		w.Write([]string{
			comm.EarnedAt.Format("2006-01-02"),
			string(comm.Type),
			fmt.Sprintf("%d", comm.OrderAmount),
			fmt.Sprintf("%.1f%%", comm.Rate),
			fmt.Sprintf("%d", comm.Amount),
			fmt.Sprintf("%d", comm.BonusAmount),
			string(comm.Status),
		})
	}
	w.Flush()
}
