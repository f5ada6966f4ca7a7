package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinoplex/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupRouter wires the handlers without backing services. Only request
// validation paths are exercised here; they reject before any service call.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandlers(nil, nil)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/movies", h.ListMovies)
		api.GET("/movies/:id", h.GetMovie)
		api.GET("/theaters/:id", h.GetTheater)
		api.GET("/showtimes/:id/seats", h.GetSeatMap)
		api.POST("/bookings", h.CreateBooking)
		api.PATCH("/bookings/initiatePayment", h.InitiatePayment)
		api.GET("/payments/success", h.NotifyPaymentCompleted)
	}
	return r
}

func doRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListMoviesRejectsBadPagination(t *testing.T) {
	r := setupRouter()

	tests := []string{
		"/api/movies?page=0",
		"/api/movies?page=-1",
		"/api/movies?pageSize=0",
		"/api/movies?pageSize=51",
	}

	for _, path := range tests {
		w := doRequest(r, "GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestListMoviesRejectsBadMinRating(t *testing.T) {
	r := setupRouter()

	for _, path := range []string{
		"/api/movies?minRating=abc",
		"/api/movies?minRating=-1",
		"/api/movies?minRating=10.5",
	} {
		w := doRequest(r, "GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestListMoviesRejectsBadDate(t *testing.T) {
	r := setupRouter()

	for _, path := range []string{
		"/api/movies?date=tomorrow",
		"/api/movies?date=2026-13-01",
		"/api/movies?date=01-09-2026",
	} {
		w := doRequest(r, "GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestGetMovieRejectsNonNumericID(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "GET", "/api/movies/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTheaterRejectsNonNumericID(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "GET", "/api/theaters/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSeatMapRejectsNonUUID(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "GET", "/api/showtimes/not-a-uuid/seats", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsInvalidBody(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "POST", "/api/bookings", []byte(`{`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing seat codes
	w = doRequest(r, "POST", "/api/bookings", []byte(`{"showtime_id": "abc"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty seat list
	w = doRequest(r, "POST", "/api/bookings", []byte(`{"showtime_id": "abc", "seat_codes": []}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInitiatePaymentRejectsMissingBookingID(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "PATCH", "/api/bookings/initiatePayment", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifyPaymentCompletedRequiresOrderID(t *testing.T) {
	r := setupRouter()

	w := doRequest(r, "GET", "/api/payments/success", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShouldCacheMoviesRequest(t *testing.T) {
	assert.True(t, shouldCacheMoviesRequest(models.MovieFilter{Page: 1, PageSize: 20}))

	assert.False(t, shouldCacheMoviesRequest(models.MovieFilter{Query: "matrix"}))
	assert.False(t, shouldCacheMoviesRequest(models.MovieFilter{Genre: "Drama"}))
	assert.False(t, shouldCacheMoviesRequest(models.MovieFilter{Language: "en"}))
	assert.False(t, shouldCacheMoviesRequest(models.MovieFilter{MinRating: 7}))
	assert.False(t, shouldCacheMoviesRequest(models.MovieFilter{Date: "2026-09-01"}))
}
