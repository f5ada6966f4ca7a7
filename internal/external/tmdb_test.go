package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTMDBClient(serverURL string) *TMDBClient {
	return NewTMDBClient(TMDBConfig{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		ImageBase:  "https://image.example.com/w500",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	})
}

func TestPopularMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 2,
			"results": [
				{"id": 603, "title": "The Matrix", "vote_average": 8.2, "original_language": "en", "genre_ids": [28, 878]},
				{"id": 680, "title": "Pulp Fiction", "vote_average": 8.5, "original_language": "en", "genre_ids": [80]}
			],
			"total_pages": 10
		}`))
	}))
	defer server.Close()

	client := newTestTMDBClient(server.URL)

	movies, err := client.PopularMovies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, float32(8.2), movies[0].VoteAverage)
	assert.Equal(t, []int{28, 878}, movies[0].GenreIDs)
}

func TestPopularMoviesRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"page": 1, "results": [{"id": 1, "title": "Recovered"}], "total_pages": 1}`))
	}))
	defer server.Close()

	client := newTestTMDBClient(server.URL)

	movies, err := client.PopularMovies(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Recovered", movies[0].Title)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPopularMoviesDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestTMDBClient(server.URL)

	_, err := client.PopularMovies(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPopularMoviesGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestTMDBClient(server.URL)

	_, err := client.PopularMovies(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		w.Write([]byte(`{"id": 603, "runtime": 136, "genres": [{"id": 28, "name": "Action"}]}`))
	}))
	defer server.Close()

	client := newTestTMDBClient(server.URL)

	details, err := client.MovieDetails(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, 136, details.Runtime)
	require.Len(t, details.Genres, 1)
	assert.Equal(t, "Action", details.Genres[0].Name)
}

func TestGenreMapFallsBackToBuiltin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestTMDBClient(server.URL)

	genres := client.GenreMap(context.Background())
	assert.Equal(t, "Action", genres[28])
	assert.Equal(t, "Science Fiction", genres[878])
}

func TestPosterURL(t *testing.T) {
	client := newTestTMDBClient("http://unused")

	assert.Equal(t, "https://image.example.com/w500/abc.jpg", client.PosterURL("/abc.jpg"))
	assert.Equal(t, "", client.PosterURL(""))
}

func TestFallbackCatalog(t *testing.T) {
	catalog := FallbackCatalog()

	assert.NotEmpty(t, catalog)
	for _, movie := range catalog {
		assert.NotZero(t, movie.ID)
		assert.NotEmpty(t, movie.Title)
	}
}
