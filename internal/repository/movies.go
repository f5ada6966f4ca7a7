package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kinoplex/internal/database"
	"kinoplex/internal/models"
)

type MovieRepository struct {
	db *database.DB
}

func NewMovieRepository(db *database.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, tmdb_id, title, genre, language, rating, release_date, runtime_min, overview, poster_url, showtimes, created_at, updated_at`

func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	showtimes, err := marshalShowtimes(movie.Showtimes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO movies (tmdb_id, title, genre, language, rating, release_date, runtime_min, overview, poster_url, showtimes)
		VALUES (NULLIF($1, 0), $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		movie.TMDBID,
		movie.Title,
		movie.Genre,
		movie.Language,
		movie.Rating,
		movie.ReleaseDate,
		movie.RuntimeMin,
		movie.Overview,
		movie.PosterURL,
		showtimes,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

// Upsert inserts a movie or refreshes its metadata when a row with the same
// tmdb_id already exists. Embedded showtimes are left untouched on conflict.
func (r *MovieRepository) Upsert(ctx context.Context, movie *models.Movie) error {
	if movie.TMDBID == 0 {
		return r.Create(ctx, movie)
	}

	showtimes, err := marshalShowtimes(movie.Showtimes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO movies (tmdb_id, title, genre, language, rating, release_date, runtime_min, overview, poster_url, showtimes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			genre = EXCLUDED.genre,
			language = EXCLUDED.language,
			rating = EXCLUDED.rating,
			release_date = EXCLUDED.release_date,
			runtime_min = EXCLUDED.runtime_min,
			overview = EXCLUDED.overview,
			poster_url = EXCLUDED.poster_url,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		movie.TMDBID,
		movie.Title,
		movie.Genre,
		movie.Language,
		movie.Rating,
		movie.ReleaseDate,
		movie.RuntimeMin,
		movie.Overview,
		movie.PosterURL,
		showtimes,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return movie, err
}

// List returns one page of movies matching the filter. The WHERE clause is
// built dynamically from whatever optional parameters are present.
func (r *MovieRepository) List(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	where, args, argIndex := buildMovieWhere(filter)

	query := `SELECT ` + movieColumns + ` FROM movies` + where

	if filter.Query != "" {
		// Search relevance first, stable id order as tie-breaker
		query += fmt.Sprintf(" ORDER BY ts_rank(search_vector, to_tsquery('english', $%d)) DESC, id ASC", 1)
	} else {
		query += " ORDER BY rating DESC, id ASC"
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filter.PageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	return movies, rows.Err()
}

// Count returns the total number of movies matching the filter, for pagination math.
func (r *MovieRepository) Count(ctx context.Context, filter models.MovieFilter) (int64, error) {
	where, args, _ := buildMovieWhere(filter)

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`+where, args...).Scan(&count)
	return count, err
}

func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	showtimes, err := marshalShowtimes(movie.Showtimes)
	if err != nil {
		return err
	}

	query := `
		UPDATE movies
		SET title = $1, genre = $2, language = $3, rating = $4, release_date = $5,
		    runtime_min = $6, overview = $7, poster_url = $8, showtimes = $9, updated_at = $10
		WHERE id = $11`

	movie.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		movie.Title,
		movie.Genre,
		movie.Language,
		movie.Rating,
		movie.ReleaseDate,
		movie.RuntimeMin,
		movie.Overview,
		movie.PosterURL,
		showtimes,
		movie.UpdatedAt,
		movie.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AppendShowtime adds an embedded showtime copy to the movie document.
// This is the denormalized half of a showtime write; the canonical row is
// inserted separately and nothing keeps the two in sync afterwards.
func (r *MovieRepository) AppendShowtime(ctx context.Context, movieID int64, showtime models.Showtime) error {
	payload, err := json.Marshal(showtime)
	if err != nil {
		return fmt.Errorf("failed to marshal showtime: %w", err)
	}

	query := `
		UPDATE movies
		SET showtimes = showtimes || $2::jsonb, updated_at = NOW()
		WHERE id = $1`

	_, err = r.db.ExecContext(ctx, query, movieID, payload)
	return err
}

// ListAll streams every movie, used by the search reindex command.
func (r *MovieRepository) ListAll(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	return movies, rows.Err()
}

func (r *MovieRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count)
	return count, err
}

// buildMovieWhere turns the optional filter parameters into a WHERE clause
// with positional args. Returns the clause, its args and the next arg index.
func buildMovieWhere(filter models.MovieFilter) (string, []interface{}, int) {
	var clauses []string
	var args []interface{}
	argIndex := 1

	if filter.Query != "" {
		clauses = append(clauses, fmt.Sprintf("search_vector @@ to_tsquery('english', $%d)", argIndex))
		args = append(args, prepareSearchQuery(filter.Query))
		argIndex++
	}

	if filter.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("genre = $%d", argIndex))
		args = append(args, filter.Genre)
		argIndex++
	}

	if filter.Language != "" {
		clauses = append(clauses, fmt.Sprintf("language = $%d", argIndex))
		args = append(args, filter.Language)
		argIndex++
	}

	if filter.MinRating > 0 {
		clauses = append(clauses, fmt.Sprintf("rating >= $%d", argIndex))
		args = append(args, filter.MinRating)
		argIndex++
	}

	if filter.Date != "" {
		// Plays-on filter goes through the canonical showtimes table
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM showtimes s WHERE s.movie_id = movies.id AND DATE(s.starts_at) = $%d)", argIndex))
		args = append(args, filter.Date)
		argIndex++
	}

	if len(clauses) == 0 {
		return "", args, argIndex
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, argIndex
}

// prepareSearchQuery formats a search query for PostgreSQL full-text search
func prepareSearchQuery(query string) string {
	if containsSearchOperators(query) {
		return query
	}

	words := strings.Fields(strings.TrimSpace(query))
	if len(words) == 0 {
		return ""
	}

	// Prefix-match each word, AND them together
	var formattedWords []string
	for _, word := range words {
		if word != "" {
			formattedWords = append(formattedWords, word+":*")
		}
	}

	return strings.Join(formattedWords, " & ")
}

// containsSearchOperators checks if the search query contains PostgreSQL search operators
func containsSearchOperators(query string) bool {
	operators := []string{"&", "|", "!", "(", ")", ":", "*"}
	for _, op := range operators {
		if strings.Contains(query, op) {
			return true
		}
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	movie := &models.Movie{}
	var tmdbID sql.NullInt64
	var showtimes []byte

	err := row.Scan(
		&movie.ID,
		&tmdbID,
		&movie.Title,
		&movie.Genre,
		&movie.Language,
		&movie.Rating,
		&movie.ReleaseDate,
		&movie.RuntimeMin,
		&movie.Overview,
		&movie.PosterURL,
		&showtimes,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tmdbID.Valid {
		movie.TMDBID = tmdbID.Int64
	}
	if len(showtimes) > 0 {
		if err := json.Unmarshal(showtimes, &movie.Showtimes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedded showtimes: %w", err)
		}
	}

	return movie, nil
}

func marshalShowtimes(showtimes []models.Showtime) ([]byte, error) {
	if showtimes == nil {
		showtimes = []models.Showtime{}
	}
	payload, err := json.Marshal(showtimes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal showtimes: %w", err)
	}
	return payload, nil
}
