package handlers

import (
	"net/http"
	"strconv"

	"kinoplex/internal/models"

	"github.com/gin-gonic/gin"
)

// Admin panel handlers. All routes here sit behind BasicAuth + AdminOnly.

// AdminCreateMovie - POST /api/admin/movies
func (h *Handlers) AdminCreateMovie(c *gin.Context) {
	var req models.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Movies.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create movie")
		return
	}

	h.invalidateMoviesCache(c)
	c.JSON(http.StatusCreated, response)
}

// AdminUpdateMovie - PUT /api/admin/movies/:id
func (h *Handlers) AdminUpdateMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return
	}

	var req models.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Movies.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, err, "Failed to update movie")
		return
	}

	h.invalidateMoviesCache(c)
	c.Status(http.StatusOK)
}

// AdminDeleteMovie - DELETE /api/admin/movies/:id
func (h *Handlers) AdminDeleteMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return
	}

	if err := h.services.Movies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete movie")
		return
	}

	h.invalidateMoviesCache(c)
	c.Status(http.StatusNoContent)
}

// AdminCreateTheater - POST /api/admin/theaters
func (h *Handlers) AdminCreateTheater(c *gin.Context) {
	var req models.CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Theaters.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create theater")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// AdminUpdateTheater - PUT /api/admin/theaters/:id
func (h *Handlers) AdminUpdateTheater(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theater ID"})
		return
	}

	var req models.CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Theaters.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, err, "Failed to update theater")
		return
	}

	c.Status(http.StatusOK)
}

// AdminDeleteTheater - DELETE /api/admin/theaters/:id
func (h *Handlers) AdminDeleteTheater(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theater ID"})
		return
	}

	if err := h.services.Theaters.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete theater")
		return
	}

	c.Status(http.StatusNoContent)
}

// AdminCreateShowtime - POST /api/admin/showtimes
// Creating a showtime also appends the denormalized copies to the movie and
// theater documents.
func (h *Handlers) AdminCreateShowtime(c *gin.Context) {
	var req models.CreateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Showtimes.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create showtime")
		return
	}

	h.invalidateMoviesCache(c)
	c.JSON(http.StatusCreated, response)
}

// AdminListBookings - GET /api/admin/bookings
// Optional status filter and free-text search over user name and email
func (h *Handlers) AdminListBookings(c *gin.Context) {
	filter := models.AdminBookingFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	bookings, err := h.services.Admin.ListBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// AdminUpdateBookingStatus - PATCH /api/admin/bookings/:id/status
func (h *Handlers) AdminUpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Admin.UpdateBookingStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Failed to update booking status")
		return
	}

	c.Status(http.StatusOK)
}

// AdminAnalytics - GET /api/admin/analytics
func (h *Handlers) AdminAnalytics(c *gin.Context) {
	analytics, err := h.services.Admin.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func (h *Handlers) invalidateMoviesCache(c *gin.Context) {
	if h.valkeyClient != nil {
		h.valkeyClient.InvalidateMovies(c.Request.Context())
	}
}
