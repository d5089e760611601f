package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/services/guide"
	"github.com/guideport/backend/internal/services/kyc"
)

// GuideHandler exposes the admin guide management endpoints
type GuideHandler struct {
	Svc    *guide.Service
	KYCSvc *kyc.Service
}

// NewGuideHandler creates a new guide handler
func NewGuideHandler(svc *guide.Service, kycSvc *kyc.Service) *GuideHandler {
	return &GuideHandler{Svc: svc, KYCSvc: kycSvc}
}

// Create registers a guide account on a guide's behalf
func (h *GuideHandler) Create(c *gin.Context) {
	var input guide.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	g, err := h.Svc.Signup(input)
	if err != nil {
		switch {
		case errors.Is(err, guide.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, guide.ErrInvalidReferralCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown referral code"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"guide": g})
}

// List returns guides, optionally filtered by status
func (h *GuideHandler) List(c *gin.Context) {
	var status *models.GuideStatus
	if v := c.Query("status"); v != "" {
		s := models.GuideStatus(v)
		status = &s
	}

	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	guides, total, err := h.Svc.List(status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list guides"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guides": guides,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get returns a single guide with its latest KYC submission
func (h *GuideHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	g, err := h.Svc.Get(id)
	if err != nil {
		notFoundOrInternal(c, err, "guide")
		return
	}

	status, submission, err := h.KYCSvc.Status(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load KYC status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guide":          g,
		"kyc_status":     status,
		"kyc_submission": submission,
	})
}

// Approve activates a pending or suspended guide
func (h *GuideHandler) Approve(c *gin.Context) {
	h.setStatus(c, h.Svc.Approve)
}

// Suspend deactivates an approved guide
func (h *GuideHandler) Suspend(c *gin.Context) {
	h.setStatus(c, h.Svc.Suspend)
}

func (h *GuideHandler) setStatus(c *gin.Context, apply func(id uuid.UUID) (*models.Guide, error)) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	g, err := apply(id)
	if err != nil {
		if errors.Is(err, guide.ErrInvalidStatusChange) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		notFoundOrInternal(c, err, "guide")
		return
	}

	c.JSON(http.StatusOK, gin.H{"guide": g})
}

// SetTierRequest is the manual tier override payload
type SetTierRequest struct {
	TierCode string `json:"tier_code" binding:"required"`
}

// SetTier manually overrides a guide's commission tier
func (h *GuideHandler) SetTier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req SetTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tier_code is required"})
		return
	}

	g, err := h.Svc.SetTier(id, models.TierCode(req.TierCode))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"guide": g})
}
