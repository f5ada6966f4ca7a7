package integration

import (
	"testing"
)

// TestAPI_HealthCheck tests the API health endpoint
func TestAPI_HealthCheck(t *testing.T) {
	client := newClientOrSkip(t)

	LogTestStep(t, "Testing API health check")
	client.HealthCheck(t)
	LogTestResult(t, "API is healthy and responding")
}

// TestAPI_ListMovies tests listing the seeded movie catalog
func TestAPI_ListMovies(t *testing.T) {
	client := newClientOrSkip(t)

	LogTestStep(t, "Testing movies listing")

	movies := client.ListMovies(t, "")
	if len(movies.Movies) == 0 {
		t.Fatalf("Expected at least one movie in the catalog, run the seeder first")
	}
	if movies.Total < int64(len(movies.Movies)) {
		t.Fatalf("Total %d smaller than page size %d", movies.Total, len(movies.Movies))
	}

	LogTestResult(t, "Found %d movies in the catalog", movies.Total)
}

// TestAPI_MovieFilters tests that catalog filters narrow results
func TestAPI_MovieFilters(t *testing.T) {
	client := newClientOrSkip(t)

	all := client.ListMovies(t, "")
	if len(all.Movies) == 0 {
		t.Skip("Empty catalog, run the seeder first")
	}

	LogTestStep(t, "Testing genre filter with genre=%s", all.Movies[0].Genre)
	filtered := client.ListMovies(t, "genre="+all.Movies[0].Genre)
	for _, movie := range filtered.Movies {
		if movie.Genre != all.Movies[0].Genre {
			t.Fatalf("Movie %d has genre %q, expected %q", movie.ID, movie.Genre, all.Movies[0].Genre)
		}
	}

	LogTestStep(t, "Testing pagination with pageSize=1")
	paged := client.ListMovies(t, "page=1&pageSize=1")
	if len(paged.Movies) != 1 {
		t.Fatalf("Expected exactly 1 movie with pageSize=1, got %d", len(paged.Movies))
	}

	LogTestResult(t, "Filters behave as expected")
}

// TestAPI_MovieDetail tests that the movie detail embeds showtimes
func TestAPI_MovieDetail(t *testing.T) {
	client := newClientOrSkip(t)

	movies := client.ListMovies(t, "")
	if len(movies.Movies) == 0 {
		t.Skip("Empty catalog, run the seeder first")
	}

	LogTestStep(t, "Testing movie detail for ID %d", movies.Movies[0].ID)
	movie := client.GetMovie(t, movies.Movies[0].ID)
	if movie.ID != movies.Movies[0].ID {
		t.Fatalf("Expected movie %d, got %d", movies.Movies[0].ID, movie.ID)
	}
	if movie.Title == "" {
		t.Fatalf("Movie %d has empty title", movie.ID)
	}

	LogTestResult(t, "Movie %q has %d embedded showtimes", movie.Title, len(movie.Showtimes))
}

// TestAPI_ListTheaters tests listing theaters
func TestAPI_ListTheaters(t *testing.T) {
	client := newClientOrSkip(t)

	LogTestStep(t, "Testing theaters listing")

	theaters := client.ListTheaters(t)
	if len(theaters) == 0 {
		t.Fatalf("Expected at least one theater, run the seeder first")
	}

	theater := client.GetTheater(t, theaters[0].ID)
	if len(theater.Screens) == 0 {
		t.Fatalf("Theater %d has no screens", theater.ID)
	}

	LogTestResult(t, "Found %d theaters, %q has %d screens", len(theaters), theater.Name, len(theater.Screens))
}

// TestAPI_SeatMap tests the generated seat map for a showtime
func TestAPI_SeatMap(t *testing.T) {
	client := newClientOrSkip(t)

	LogTestStep(t, "Looking for a showtime with free seats")
	seatMap := FindShowtimeWithSeats(t, client, 1)
	if seatMap == nil {
		t.Skip("No showtimes with free seats found")
	}

	if seatMap.Price <= 0 {
		t.Fatalf("Showtime %s has non-positive price %d", seatMap.ShowtimeID, seatMap.Price)
	}
	if seatMap.Rows[0].Row != "A" {
		t.Fatalf("Expected first row to be A, got %q", seatMap.Rows[0].Row)
	}

	LogTestResult(t, "Seat map for %s has %d rows", seatMap.ShowtimeID, len(seatMap.Rows))
}

// TestAPI_BookingsRequireAuth tests that booking endpoints reject anonymous requests
func TestAPI_BookingsRequireAuth(t *testing.T) {
	client := newClientOrSkip(t)

	LogTestStep(t, "Testing unauthenticated access to bookings")

	resp := client.makeRequest(t, "GET", "/api/bookings", nil, false)
	defer resp.Body.Close()

	if resp.StatusCode != 401 {
		t.Fatalf("Expected status 401 without credentials, got %d", resp.StatusCode)
	}

	LogTestResult(t, "Anonymous booking access rejected")
}
