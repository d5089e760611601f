package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guideport/backend/internal/services/whitelabel"
	"gorm.io/gorm"
)

// WhiteLabelHandler exposes the white-label page and subscription endpoints
type WhiteLabelHandler struct {
	Svc *whitelabel.Service
}

// NewWhiteLabelHandler creates a new white-label handler
func NewWhiteLabelHandler(svc *whitelabel.Service) *WhiteLabelHandler {
	return &WhiteLabelHandler{Svc: svc}
}

// UpsertPage creates or updates the guide's storefront page
func (h *WhiteLabelHandler) UpsertPage(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	var input whitelabel.PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	page, err := h.Svc.UpsertPage(guideID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GetPage returns the guide's own storefront page
func (h *WhiteLabelHandler) GetPage(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	page, err := h.Svc.GetPage(guideID)
	if err != nil {
		notFoundOrInternal(c, err, "white-label page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GetPublicPage returns a published storefront page by slug
func (h *WhiteLabelHandler) GetPublicPage(c *gin.Context) {
	page, err := h.Svc.GetPageBySlug(c.Param("slug"))
	if err != nil {
		notFoundOrInternal(c, err, "page")
		return
	}
	if !page.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// CreateSubscriptionRequest carries the billing email for Stripe checkout
type CreateSubscriptionRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

// CreateSubscription starts a Stripe checkout for the white-label plan and
// returns the hosted checkout URL
func (h *WhiteLabelHandler) CreateSubscription(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_email is required"})
		return
	}

	checkoutURL, err := h.Svc.CreateSubscription(guideID, req.CustomerEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "white-label page not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to start checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": checkoutURL})
}

// SyncSubscription refreshes the subscription status from Stripe
func (h *WhiteLabelHandler) SyncSubscription(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	page, err := h.Svc.SyncSubscription(guideID)
	if err != nil {
		respondSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// CancelSubscription cancels the subscription at the current period end
func (h *WhiteLabelHandler) CancelSubscription(c *gin.Context) {
	guideID, ok := guideIDFromContext(c)
	if !ok {
		return
	}

	page, err := h.Svc.CancelSubscription(guideID)
	if err != nil {
		respondSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// RecordOrderRequest is the payload for a storefront order notification
type RecordOrderRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	Amount        int64  `json:"amount" binding:"required"`
}

// RecordOrder records a paid order placed through a published storefront
func (h *WhiteLabelHandler) RecordOrder(c *gin.Context) {
	var req RecordOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_email and amount are required"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	order, err := h.Svc.RecordOrder(c.Param("slug"), req.CustomerEmail, req.Amount)
	if err != nil {
		notFoundOrInternal(c, err, "page")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func respondSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, whitelabel.ErrNoSubscription):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "white-label page not found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update subscription"})
	}
}
