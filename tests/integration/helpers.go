package integration

import (
	"os"
	"testing"

	"kinoplex/internal/models"
)

const (
	DefaultEmail    = "admin@kinoplex.local"
	DefaultPassword = "admin123"
)

// newClientOrSkip builds a test client against the API named by
// KINOPLEX_API_URL, skipping the test when no server is configured.
func newClientOrSkip(t *testing.T) *TestClient {
	baseURL := os.Getenv("KINOPLEX_API_URL")
	if baseURL == "" {
		t.Skip("KINOPLEX_API_URL not set, skipping integration test")
	}

	email := os.Getenv("KINOPLEX_TEST_EMAIL")
	if email == "" {
		email = DefaultEmail
	}
	password := os.Getenv("KINOPLEX_TEST_PASSWORD")
	if password == "" {
		password = DefaultPassword
	}

	return NewTestClient(baseURL, email, password)
}

// FindAvailableSeats returns up to n available seat codes from the seat map
func FindAvailableSeats(seatMap *models.SeatMapResponse, n int) []string {
	var codes []string
	for _, row := range seatMap.Rows {
		for _, seat := range row.Seats {
			if seat.Status == "available" {
				codes = append(codes, seat.Code)
				if len(codes) == n {
					return codes
				}
			}
		}
	}
	return codes
}

// FindShowtimeWithSeats walks the catalog looking for a showtime that still
// has at least n free seats. Returns nil when the catalog is empty.
func FindShowtimeWithSeats(t *testing.T, client *TestClient, n int) *models.SeatMapResponse {
	movies := client.ListMovies(t, "")
	for _, item := range movies.Movies {
		movie := client.GetMovie(t, item.ID)
		for _, st := range movie.Showtimes {
			seatMap := client.GetSeatMap(t, st.ID)
			if len(FindAvailableSeats(seatMap, n)) == n {
				return seatMap
			}
		}
	}
	return nil
}

// AssertMovieExists checks if a movie exists in the list
func AssertMovieExists(t *testing.T, movies models.ListMoviesResponse, movieID int64) {
	for _, movie := range movies.Movies {
		if movie.ID == movieID {
			return
		}
	}
	t.Fatalf("Movie with ID %d not found in movies list, %+v", movieID, movies.Movies)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
