package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/middleware"
	"kinoplex/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBooking - POST /api/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrSeatTaken) {
			middleware.CountSeatConflict()
		}
		respondError(c, err, "Failed to create booking")
		return
	}

	middleware.CountBookingCreated()
	c.JSON(http.StatusCreated, response)
}

// ListBookings - GET /api/bookings
// Lists the authenticated user's bookings
func (h *Handlers) ListBookings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.services.Bookings.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking - GET /api/bookings/:id
// A booking is only visible to the user who made it
func (h *Handlers) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := h.services.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get booking")
		return
	}

	if userID, ok := middleware.UserIDFromContext(c.Request.Context()); ok {
		if booking.UserID != nil && *booking.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}

	c.JSON(http.StatusOK, booking)
}

// InitiatePayment - PATCH /api/bookings/initiatePayment
// Responds with a redirect to the payment gateway
func (h *Handlers) InitiatePayment(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paymentURL, err := h.services.Bookings.InitiatePayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to initiate payment")
		return
	}

	c.Header("Location", paymentURL)
	c.JSON(http.StatusFound, gin.H{"payment_url": paymentURL})
}

// CancelBooking - PATCH /api/bookings/cancel
func (h *Handlers) CancelBooking(c *gin.Context) {
	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Bookings.Cancel(c.Request.Context(), &req); err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
