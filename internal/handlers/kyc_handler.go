package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guideport/backend/internal/services/kyc"
)

// KYCHandler exposes the guide KYC endpoints and the admin review endpoints
type KYCHandler struct {
	Svc *kyc.Service
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(svc *kyc.Service) *KYCHandler {
	return &KYCHandler{Svc: svc}
}

// Submit records a KYC document submission for the authenticated guide
func (h *KYCHandler) Submit(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	var input kyc.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	submission, err := h.Svc.Submit(guideID, input)
	if err != nil {
		var fieldErrs kyc.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fieldErrs})
		case errors.Is(err, kyc.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			notFoundOrInternal(c, err, "guide")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

// Status returns the authenticated guide's KYC status and latest submission
func (h *KYCHandler) Status(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	status, submission, err := h.Svc.Status(guideID)
	if err != nil {
		notFoundOrInternal(c, err, "guide")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status, "submission": submission})
}

// Approve marks the guide's latest submission as approved
func (h *KYCHandler) Approve(c *gin.Context) {
	guideID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.Svc.Approve(guideID, reviewerID); err != nil {
		respondKYCReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "KYC approved"})
}

// RejectKYCRequest carries the rejection reason shown to the guide
type RejectKYCRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject marks the guide's latest submission as rejected with a reason
func (h *KYCHandler) Reject(c *gin.Context) {
	guideID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req RejectKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	if err := h.Svc.Reject(guideID, reviewerID, req.Reason); err != nil {
		respondKYCReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "KYC rejected"})
}

func respondKYCReviewError(c *gin.Context, err error) {
	if errors.Is(err, kyc.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	notFoundOrInternal(c, err, "guide")
}
