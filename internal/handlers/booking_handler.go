package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/services/booking"
	"gorm.io/gorm"
)

// BookingHandler exposes the admin booking endpoints
type BookingHandler struct {
	Svc *booking.Service
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// CreateBookingRequest is the admin booking creation payload
type CreateBookingRequest struct {
	VenueID       string    `json:"venue_id" binding:"required"`
	GuideID       string    `json:"guide_id" binding:"required"`
	CustomerID    string    `json:"customer_id" binding:"required"`
	PartySize     int       `json:"party_size" binding:"required"`
	BookingAt     time.Time `json:"booking_at" binding:"required"`
	DepositAmount int64     `json:"deposit_amount"`
	AdminNotes    string    `json:"admin_notes"`
}

// Create registers a new booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue_id"})
		return
	}
	guideID, err := uuid.Parse(req.GuideID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guide_id"})
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer_id"})
		return
	}

	b, err := h.Svc.Create(booking.CreateInput{
		VenueID:       venueID,
		GuideID:       guideID,
		CustomerID:    customerID,
		PartySize:     req.PartySize,
		BookingAt:     req.BookingAt,
		DepositAmount: req.DepositAmount,
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// List returns bookings matching the query filters
func (h *BookingHandler) List(c *gin.Context) {
	filter := booking.ListFilter{Limit: 50}

	if v := c.Query("guide_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guide_id"})
			return
		}
		filter.GuideID = &id
	}
	if v := c.Query("venue_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue_id"})
			return
		}
		filter.VenueID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.BookingStatus(v)
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		filter.To = &t
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	bookings, total, err := h.Svc.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// Get returns a single booking with its status history
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.Svc.Get(id)
	if err != nil {
		notFoundOrInternal(c, err, "booking")
		return
	}

	history, err := h.Svc.History(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b, "history": history})
}

// MarkDepositPaid records deposit payment on a pending booking
func (h *BookingHandler) MarkDepositPaid(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.Svc.MarkDepositPaid(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// Confirm moves a booking from pending to confirmed
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	b, err := h.Svc.Confirm(id, actorID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CompleteBookingRequest carries the actual spend reported by the venue.
// The field binds through a pointer so a legitimate zero-yen spend is not
// mistaken for an omitted field.
type CompleteBookingRequest struct {
	ActualSpend *int64 `json:"actual_spend" binding:"required"`
}

// Complete marks a confirmed booking as completed and records its commission
func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actual_spend is required"})
		return
	}

	b, err := h.Svc.Complete(id, actorID, *req.ActualSpend)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// MarkNoShow marks a confirmed booking as a no-show and forfeits the deposit
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	b, err := h.Svc.MarkNoShow(id, actorID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBookingRequest carries the cancellation reason
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Cancel cancels a pending or confirmed booking
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	b, err := h.Svc.Cancel(id, actorID, req.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func respondBookingError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
	}
}
