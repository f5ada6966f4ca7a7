package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/models"

	"github.com/gin-gonic/gin"
)

// Payments handlers

// NotifyPaymentCompleted - GET /api/payments/success
// The gateway redirects the user here after a successful payment
func (h *Handlers) NotifyPaymentCompleted(c *gin.Context) {
	orderID := c.Query("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
		return
	}

	if err := h.services.Bookings.HandlePaymentSuccess(c.Request.Context(), orderID); err != nil {
		respondError(c, err, "Failed to handle payment success")
		return
	}

	c.Status(http.StatusOK)
}

// NotifyPaymentFailed - GET /api/payments/fail
func (h *Handlers) NotifyPaymentFailed(c *gin.Context) {
	orderID := c.Query("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
		return
	}

	if err := h.services.Bookings.HandlePaymentFail(c.Request.Context(), orderID); err != nil {
		respondError(c, err, "Failed to handle payment failure")
		return
	}

	c.Status(http.StatusOK)
}

// OnPaymentUpdates - POST /api/payments/notifications
// Webhook endpoint the gateway posts asynchronous status changes to
func (h *Handlers) OnPaymentUpdates(c *gin.Context) {
	var notification models.PaymentNotificationPayload
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slog.Info("Received payment notification",
		"payment_id", notification.PaymentID,
		"order_id", notification.OrderID,
		"status", notification.Status)

	if err := h.services.Bookings.HandlePaymentNotification(c.Request.Context(), &notification); err != nil {
		// Unknown orders get a 200 so the gateway stops retrying
		if errors.Is(err, apperrors.ErrNotFound) {
			slog.Warn("Payment notification for unknown order",
				"order_id", notification.OrderID,
				"payment_id", notification.PaymentID)
			c.Status(http.StatusOK)
			return
		}
		respondError(c, err, "Failed to handle notification")
		return
	}

	c.Status(http.StatusOK)
}
