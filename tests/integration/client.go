package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"kinoplex/internal/models"
)

// TestClient provides methods for testing the API
type TestClient struct {
	BaseURL    string
	Email      string
	Password   string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client
func NewTestClient(baseURL, email, password string) *TestClient {
	return &TestClient{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}, authenticated bool) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.SetBasicAuth(c.Email, c.Password)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// HealthCheck checks if the API is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 from health check, got %d", resp.StatusCode)
	}
}

// ListMovies lists movies with an optional query string
func (c *TestClient) ListMovies(t *testing.T, query string) models.ListMoviesResponse {
	path := "/api/movies"
	if query != "" {
		path += "?" + query
	}
	resp := c.makeRequest(t, "GET", path, nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var movies models.ListMoviesResponse
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		t.Fatalf("Failed to decode movies response: %v", err)
	}

	return movies
}

// GetMovie gets a single movie with its embedded showtimes
func (c *TestClient) GetMovie(t *testing.T, id int64) *models.Movie {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/movies/%d", id), nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var movie models.Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		t.Fatalf("Failed to decode movie response: %v", err)
	}

	return &movie
}

// ListTheaters lists all theaters
func (c *TestClient) ListTheaters(t *testing.T) []models.ListTheatersResponseItem {
	resp := c.makeRequest(t, "GET", "/api/theaters", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var theaters []models.ListTheatersResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&theaters); err != nil {
		t.Fatalf("Failed to decode theaters response: %v", err)
	}

	return theaters
}

// GetTheater gets a single theater with its embedded showtimes
func (c *TestClient) GetTheater(t *testing.T, id int64) *models.Theater {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/theaters/%d", id), nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var theater models.Theater
	if err := json.NewDecoder(resp.Body).Decode(&theater); err != nil {
		t.Fatalf("Failed to decode theater response: %v", err)
	}

	return &theater
}

// GetSeatMap gets the seat map for a showtime
func (c *TestClient) GetSeatMap(t *testing.T, showtimeID string) *models.SeatMapResponse {
	resp := c.makeRequest(t, "GET", "/api/showtimes/"+showtimeID+"/seats", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var seatMap models.SeatMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&seatMap); err != nil {
		t.Fatalf("Failed to decode seat map response: %v", err)
	}

	return &seatMap
}

// CreateBooking creates a new booking for the given seats
func (c *TestClient) CreateBooking(t *testing.T, showtimeID string, seatCodes []string) *models.CreateBookingResponse {
	req := models.CreateBookingRequest{
		ShowtimeID: showtimeID,
		SeatCodes:  seatCodes,
	}

	resp := c.makeRequest(t, "POST", "/api/bookings", req, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, string(body))
	}

	var booking models.CreateBookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("Failed to decode booking response: %v", err)
	}

	return &booking
}

// CreateBookingExpectingConflict attempts a booking that should fail with 409
func (c *TestClient) CreateBookingExpectingConflict(t *testing.T, showtimeID string, seatCodes []string) {
	req := models.CreateBookingRequest{
		ShowtimeID: showtimeID,
		SeatCodes:  seatCodes,
	}

	resp := c.makeRequest(t, "POST", "/api/bookings", req, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("Expected status 409 for taken seats, got %d", resp.StatusCode)
	}
}

// ListBookings lists the authenticated user's bookings
func (c *TestClient) ListBookings(t *testing.T) []models.ListBookingsResponseItem {
	resp := c.makeRequest(t, "GET", "/api/bookings", nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var bookings []models.ListBookingsResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		t.Fatalf("Failed to decode bookings response: %v", err)
	}

	return bookings
}

// GetBooking gets a single booking with its seats
func (c *TestClient) GetBooking(t *testing.T, id int64) *models.Booking {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/api/bookings/%d", id), nil, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var booking models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		t.Fatalf("Failed to decode booking response: %v", err)
	}

	return &booking
}

// InitiatePayment starts payment for a booking and returns the payment URL
func (c *TestClient) InitiatePayment(t *testing.T, bookingID int64) string {
	req := models.InitiatePaymentRequest{
		BookingID: bookingID,
	}

	resp := c.makeRequest(t, "PATCH", "/api/bookings/initiatePayment", req, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 302, got %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		PaymentURL string `json:"payment_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode payment response: %v", err)
	}

	return result.PaymentURL
}

// CancelBooking cancels a booking
func (c *TestClient) CancelBooking(t *testing.T, bookingID int64) {
	req := models.CancelBookingRequest{
		BookingID: bookingID,
	}

	resp := c.makeRequest(t, "PATCH", "/api/bookings/cancel", req, true)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
}

// NotifyPaymentSuccess simulates the gateway redirecting back after success
func (c *TestClient) NotifyPaymentSuccess(t *testing.T, orderID string) {
	resp := c.makeRequest(t, "GET", "/api/payments/success?orderId="+orderID, nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
}
