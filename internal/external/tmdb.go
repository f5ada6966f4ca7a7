package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type TMDBClient struct {
	baseURL    string
	apiKey     string
	imageBase  string
	maxRetries int
	httpClient *http.Client
}

type TMDBConfig struct {
	BaseURL    string
	APIKey     string
	ImageBase  string
	Timeout    time.Duration
	MaxRetries int
}

// TMDBMovie is one entry of a TMDB list response
type TMDBMovie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	VoteAverage      float32 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	PosterPath       string  `json:"poster_path"`
	GenreIDs         []int   `json:"genre_ids"`
}

// TMDBMovieDetails carries the per-movie fields the list endpoint omits
type TMDBMovieDetails struct {
	ID      int64 `json:"id"`
	Runtime int   `json:"runtime"`
	Genres  []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type popularResponse struct {
	Page       int         `json:"page"`
	Results    []TMDBMovie `json:"results"`
	TotalPages int         `json:"total_pages"`
}

type genreListResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

func NewTMDBClient(cfg TMDBConfig) *TMDBClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &TMDBClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		imageBase:  cfg.ImageBase,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// PopularMovies fetches one page of the popular movie list
func (tc *TMDBClient) PopularMovies(ctx context.Context, page int) ([]TMDBMovie, error) {
	var result popularResponse
	params := url.Values{"page": []string{strconv.Itoa(page)}}

	if err := tc.getJSON(ctx, "/movie/popular", params, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch popular movies page %d: %w", page, err)
	}

	return result.Results, nil
}

// MovieDetails fetches the detail record of a movie (runtime, resolved genres)
func (tc *TMDBClient) MovieDetails(ctx context.Context, id int64) (*TMDBMovieDetails, error) {
	var result TMDBMovieDetails

	if err := tc.getJSON(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch movie details for %d: %w", id, err)
	}

	return &result, nil
}

// GenreMap fetches the id-to-name genre mapping. On failure the built-in
// mapping is returned so seeding can continue offline.
func (tc *TMDBClient) GenreMap(ctx context.Context) map[int]string {
	var result genreListResponse

	if err := tc.getJSON(ctx, "/genre/movie/list", nil, &result); err != nil {
		slog.Warn("Failed to fetch TMDB genres, using built-in mapping", "error", err)
		return builtinGenres()
	}

	genres := make(map[int]string, len(result.Genres))
	for _, g := range result.Genres {
		genres[g.ID] = g.Name
	}
	return genres
}

// PosterURL resolves a TMDB poster path against the configured image base
func (tc *TMDBClient) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return tc.imageBase + path
}

// getJSON performs a GET with retry and linear backoff. Network errors and
// 5xx responses are retried; 4xx responses fail immediately.
func (tc *TMDBClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", tc.apiKey)

	reqURL := tc.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= tc.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := tc.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				err = json.NewDecoder(resp.Body).Decode(out)
				resp.Body.Close()
				if err != nil {
					return fmt.Errorf("failed to decode response: %w", err)
				}
				return nil
			}

			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			resp.Body.Close()

			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
				return lastErr
			}
		}

		if attempt < tc.maxRetries {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			slog.Warn("TMDB request failed, retrying",
				"path", path, "attempt", attempt, "max_retries", tc.maxRetries, "error", lastErr)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", tc.maxRetries, lastErr)
}

func builtinGenres() map[int]string {
	return map[int]string{
		28:    "Action",
		12:    "Adventure",
		16:    "Animation",
		35:    "Comedy",
		80:    "Crime",
		99:    "Documentary",
		18:    "Drama",
		10751: "Family",
		14:    "Fantasy",
		36:    "History",
		27:    "Horror",
		10402: "Music",
		9648:  "Mystery",
		10749: "Romance",
		878:   "Science Fiction",
		53:    "Thriller",
		10752: "War",
		37:    "Western",
	}
}

// FallbackCatalog is the static movie list used when TMDB is unreachable or
// no API key is configured, so a fresh environment can still be seeded.
func FallbackCatalog() []TMDBMovie {
	return []TMDBMovie{
		{ID: 27205, Title: "Inception", Overview: "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.", VoteAverage: 8.4, ReleaseDate: "2010-07-15", OriginalLanguage: "en", GenreIDs: []int{28, 878}},
		{ID: 157336, Title: "Interstellar", Overview: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.", VoteAverage: 8.4, ReleaseDate: "2014-11-05", OriginalLanguage: "en", GenreIDs: []int{12, 878}},
		{ID: 496243, Title: "Parasite", Overview: "All unemployed, Ki-taek's family takes peculiar interest in the wealthy Park family.", VoteAverage: 8.5, ReleaseDate: "2019-05-30", OriginalLanguage: "ko", GenreIDs: []int{35, 53}},
		{ID: 603, Title: "The Matrix", Overview: "A computer hacker learns about the true nature of his reality.", VoteAverage: 8.2, ReleaseDate: "1999-03-31", OriginalLanguage: "en", GenreIDs: []int{28, 878}},
		{ID: 680, Title: "Pulp Fiction", Overview: "The lives of two mob hitmen, a boxer and a pair of bandits intertwine.", VoteAverage: 8.5, ReleaseDate: "1994-09-10", OriginalLanguage: "en", GenreIDs: []int{80, 18}},
		{ID: 155, Title: "The Dark Knight", Overview: "Batman raises the stakes in his war on crime.", VoteAverage: 8.5, ReleaseDate: "2008-07-16", OriginalLanguage: "en", GenreIDs: []int{28, 80}},
		{ID: 129, Title: "Spirited Away", Overview: "A young girl wanders into a world ruled by gods, witches and spirits.", VoteAverage: 8.5, ReleaseDate: "2001-07-20", OriginalLanguage: "ja", GenreIDs: []int{16, 14}},
		{ID: 550, Title: "Fight Club", Overview: "An insomniac office worker and a soap maker form an underground fight club.", VoteAverage: 8.4, ReleaseDate: "1999-10-15", OriginalLanguage: "en", GenreIDs: []int{18, 53}},
	}
}
