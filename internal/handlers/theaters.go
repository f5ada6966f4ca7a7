package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListTheaters - GET /api/theaters
func (h *Handlers) ListTheaters(c *gin.Context) {
	location := c.Query("location")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return
	}

	theaters, err := h.services.Theaters.List(c.Request.Context(), location, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to list theaters")
		return
	}

	c.JSON(http.StatusOK, theaters)
}

// GetTheater - GET /api/theaters/:id
// Returns the theater with its screens and embedded showtimes
func (h *Handlers) GetTheater(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theater ID"})
		return
	}

	theater, err := h.services.Theaters.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get theater")
		return
	}

	c.JSON(http.StatusOK, theater)
}
