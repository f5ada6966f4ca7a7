package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetSeatMap - GET /api/showtimes/:id/seats
// The map is generated from the screen dimensions on every request; booked
// seats are the ones with a reservation row.
func (h *Handlers) GetSeatMap(c *gin.Context) {
	showtimeID := c.Param("id")
	if _, err := uuid.Parse(showtimeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid showtime ID"})
		return
	}

	seatMap, err := h.services.Showtimes.SeatMap(c.Request.Context(), showtimeID)
	if err != nil {
		respondError(c, err, "Failed to get seat map")
		return
	}

	c.JSON(http.StatusOK, seatMap)
}
