package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResetDatabase - POST /api/admin/reset
// Drops all bookings and their seat reservations
func (h *Handlers) ResetDatabase(c *gin.Context) {
	if err := h.services.Reset.ResetDatabase(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to reset database")
		return
	}

	h.invalidateMoviesCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Database reset successfully"})
}
