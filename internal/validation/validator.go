package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"kinoplex/internal/models"
)

// SmokeValidator exercises the public API surface of a running instance.
// It is read-only apart from the payment callbacks, so it is safe against a
// seeded environment.
type SmokeValidator struct {
	baseURL string
}

func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{baseURL: baseURL}
}

func (v *SmokeValidator) ValidateAll() error {
	log.Println("Validating API endpoints...")

	if err := v.validateHealth(); err != nil {
		return fmt.Errorf("health validation failed: %w", err)
	}

	if err := v.validateMovies(); err != nil {
		return fmt.Errorf("movies validation failed: %w", err)
	}

	if err := v.validateTheaters(); err != nil {
		return fmt.Errorf("theaters validation failed: %w", err)
	}

	if err := v.validateSeatMap(); err != nil {
		return fmt.Errorf("seat map validation failed: %w", err)
	}

	log.Println("All endpoints validated successfully")
	return nil
}

func (v *SmokeValidator) validateHealth() error {
	resp, err := v.makeRequest("GET", "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /health: expected 200, got %d", resp.StatusCode)
	}

	return nil
}

func (v *SmokeValidator) validateMovies() error {
	log.Println("Checking movies endpoints...")

	resp, err := v.makeRequest("GET", "/api/movies?page=1&pageSize=20", nil)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("GET /api/movies: expected 200, got %d", resp.StatusCode)
	}

	var listResp models.ListMoviesResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		resp.Body.Close()
		return fmt.Errorf("GET /api/movies: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if len(listResp.Movies) == 0 {
		return fmt.Errorf("GET /api/movies: expected non-empty list, run the seeder first")
	}

	// Detail endpoint must surface the embedded showtimes
	first := listResp.Movies[0]
	resp, err = v.makeRequest("GET", fmt.Sprintf("/api/movies/%d", first.ID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/movies/%d: expected 200, got %d", first.ID, resp.StatusCode)
	}

	var movie models.Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return fmt.Errorf("GET /api/movies/%d: failed to decode response: %w", first.ID, err)
	}

	// Filters must not 500
	for _, path := range []string{
		"/api/movies?query=the",
		"/api/movies?genre=Drama",
		"/api/movies?minRating=7",
		"/api/movies?language=en",
	} {
		resp, err := v.makeRequest("GET", path, nil)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}

	log.Println("Movies endpoints OK")
	return nil
}

func (v *SmokeValidator) validateTheaters() error {
	log.Println("Checking theaters endpoints...")

	resp, err := v.makeRequest("GET", "/api/theaters", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/theaters: expected 200, got %d", resp.StatusCode)
	}

	var theaters []models.ListTheatersResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&theaters); err != nil {
		return fmt.Errorf("GET /api/theaters: failed to decode response: %w", err)
	}

	if len(theaters) == 0 {
		return fmt.Errorf("GET /api/theaters: expected non-empty list, run the seeder first")
	}

	log.Println("Theaters endpoints OK")
	return nil
}

// validateSeatMap walks from a theater document to one of its embedded
// showtimes and asks for the generated seat map.
func (v *SmokeValidator) validateSeatMap() error {
	log.Println("Checking seat map endpoint...")

	resp, err := v.makeRequest("GET", "/api/theaters", nil)
	if err != nil {
		return err
	}

	var theaters []models.ListTheatersResponseItem
	if err := json.NewDecoder(resp.Body).Decode(&theaters); err != nil {
		resp.Body.Close()
		return fmt.Errorf("failed to decode theaters: %w", err)
	}
	resp.Body.Close()

	if len(theaters) == 0 {
		return fmt.Errorf("no theaters to check seat maps against")
	}

	resp, err = v.makeRequest("GET", fmt.Sprintf("/api/theaters/%d", theaters[0].ID), nil)
	if err != nil {
		return err
	}

	var theater models.Theater
	if err := json.NewDecoder(resp.Body).Decode(&theater); err != nil {
		resp.Body.Close()
		return fmt.Errorf("failed to decode theater: %w", err)
	}
	resp.Body.Close()

	if len(theater.Showtimes) == 0 {
		log.Println("Theater has no showtimes, skipping seat map check")
		return nil
	}

	showtimeID := theater.Showtimes[0].ID
	resp, err = v.makeRequest("GET", "/api/showtimes/"+showtimeID+"/seats", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/showtimes/%s/seats: expected 200, got %d", showtimeID, resp.StatusCode)
	}

	var seatMap models.SeatMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&seatMap); err != nil {
		return fmt.Errorf("failed to decode seat map: %w", err)
	}

	if len(seatMap.Rows) == 0 {
		return fmt.Errorf("GET /api/showtimes/%s/seats: expected non-empty seat map", showtimeID)
	}

	log.Println("Seat map endpoint OK")
	return nil
}

func (v *SmokeValidator) makeRequest(method, path string, body interface{}) (*http.Response, error) {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err = http.NewRequest(method, v.baseURL+path, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, v.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// RunValidation validates a running instance, defaulting to localhost
func RunValidation() {
	baseURL := os.Getenv("VALIDATE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	validator := NewSmokeValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}
