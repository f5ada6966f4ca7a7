package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"kinoplex/internal/cache"
	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/models"
	"kinoplex/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services     *service.Services
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		services:     services,
		valkeyClient: valkeyClient,
	}
}

// respondError maps service errors onto HTTP statuses. Anything not covered
// by a sentinel is a 500 with a generic message.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrSeatTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "One or more seats are already taken"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrUnknownScreen):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown screen"})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// Movies handlers

// ListMovies - GET /api/movies
// Browse the catalog with optional query, genre, language, minRating and
// date filters. Only unfiltered pages go through the Valkey cache.
func (h *Handlers) ListMovies(c *gin.Context) {
	filter, ok := parseMovieFilter(c)
	if !ok {
		return
	}

	shouldCache := shouldCacheMoviesRequest(filter)

	if shouldCache && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetMoviesListRaw(c.Request.Context(), filter.Page, filter.PageSize)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	response, err := h.services.Movies.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list movies")
		return
	}

	if shouldCache && h.valkeyClient != nil {
		h.valkeyClient.SetMoviesList(c.Request.Context(), filter.Page, filter.PageSize, response)
	}

	c.JSON(http.StatusOK, response)
}

// GetMovie - GET /api/movies/:id
func (h *Handlers) GetMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return
	}

	movie, err := h.services.Movies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get movie")
		return
	}

	c.JSON(http.StatusOK, movie)
}

func parseMovieFilter(c *gin.Context) (models.MovieFilter, bool) {
	filter := models.MovieFilter{
		Query:    c.Query("query"),
		Genre:    c.Query("genre"),
		Language: c.Query("language"),
		Date:     c.Query("date"),
	}

	if raw := c.Query("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRating < 0 || minRating > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRating must be a number between 0 and 10"})
			return filter, false
		}
		filter.MinRating = minRating
	}

	if filter.Date != "" {
		if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return filter, false
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return filter, false
	}
	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return filter, false
	}

	filter.Page = page
	filter.PageSize = pageSize
	return filter, true
}

// shouldCacheMoviesRequest reports whether the request is a plain catalog
// page with no filters, the only shape the cache keys cover.
func shouldCacheMoviesRequest(filter models.MovieFilter) bool {
	return filter.Query == "" &&
		filter.Genre == "" &&
		filter.Language == "" &&
		filter.MinRating == 0 &&
		filter.Date == ""
}
