package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kinoplex/internal/database"
	"kinoplex/internal/models"

	"github.com/lib/pq"
)

type TheaterRepository struct {
	db *database.DB
}

func NewTheaterRepository(db *database.DB) *TheaterRepository {
	return &TheaterRepository{db: db}
}

const theaterColumns = `id, name, location, screens, showtimes, movie_titles, created_at, updated_at`

func (r *TheaterRepository) Create(ctx context.Context, theater *models.Theater) error {
	screens, err := json.Marshal(theater.Screens)
	if err != nil {
		return fmt.Errorf("failed to marshal screens: %w", err)
	}
	showtimes, err := marshalShowtimes(theater.Showtimes)
	if err != nil {
		return err
	}
	if theater.MovieTitles == nil {
		theater.MovieTitles = []string{}
	}

	query := `
		INSERT INTO theaters (name, location, screens, showtimes, movie_titles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		theater.Name,
		theater.Location,
		screens,
		showtimes,
		pq.Array(theater.MovieTitles),
	).Scan(&theater.ID, &theater.CreatedAt, &theater.UpdatedAt)
}

func (r *TheaterRepository) GetByID(ctx context.Context, id int64) (*models.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE id = $1`

	theater, err := scanTheater(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return theater, err
}

func (r *TheaterRepository) GetByName(ctx context.Context, name string) (*models.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE name = $1`

	theater, err := scanTheater(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return theater, err
}

func (r *TheaterRepository) List(ctx context.Context, location string, page, pageSize int) ([]models.Theater, error) {
	var args []interface{}
	argIndex := 1

	query := `SELECT ` + theaterColumns + ` FROM theaters`

	if location != "" {
		query += fmt.Sprintf(" WHERE LOWER(location) = LOWER($%d)", argIndex)
		args = append(args, location)
		argIndex++
	}

	query += " ORDER BY name ASC"

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var theaters []models.Theater
	for rows.Next() {
		theater, err := scanTheater(rows)
		if err != nil {
			return nil, err
		}
		theaters = append(theaters, *theater)
	}

	return theaters, rows.Err()
}

func (r *TheaterRepository) Update(ctx context.Context, theater *models.Theater) error {
	screens, err := json.Marshal(theater.Screens)
	if err != nil {
		return fmt.Errorf("failed to marshal screens: %w", err)
	}
	showtimes, err := marshalShowtimes(theater.Showtimes)
	if err != nil {
		return err
	}

	query := `
		UPDATE theaters
		SET name = $1, location = $2, screens = $3, showtimes = $4, movie_titles = $5, updated_at = $6
		WHERE id = $7`

	theater.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		theater.Name,
		theater.Location,
		screens,
		showtimes,
		pq.Array(theater.MovieTitles),
		theater.UpdatedAt,
		theater.ID,
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

func (r *TheaterRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM theaters WHERE id = $1`, id)
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

// AppendShowtime writes the theater-side denormalized copy of a showtime and
// records the movie title in movie_titles if it is not there yet.
func (r *TheaterRepository) AppendShowtime(ctx context.Context, theaterID int64, showtime models.Showtime) error {
	payload, err := json.Marshal(showtime)
	if err != nil {
		return fmt.Errorf("failed to marshal showtime: %w", err)
	}

	query := `
		UPDATE theaters
		SET showtimes = showtimes || $2::jsonb,
		    movie_titles = CASE
		        WHEN $3 = ANY(movie_titles) THEN movie_titles
		        ELSE array_append(movie_titles, $3)
		    END,
		    updated_at = NOW()
		WHERE id = $1`

	_, err = r.db.ExecContext(ctx, query, theaterID, payload, showtime.MovieTitle)
	return err
}

func (r *TheaterRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM theaters`).Scan(&count)
	return count, err
}

func scanTheater(row rowScanner) (*models.Theater, error) {
	theater := &models.Theater{}
	var screens, showtimes []byte

	err := row.Scan(
		&theater.ID,
		&theater.Name,
		&theater.Location,
		&screens,
		&showtimes,
		pq.Array(&theater.MovieTitles),
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(screens) > 0 {
		if err := json.Unmarshal(screens, &theater.Screens); err != nil {
			return nil, fmt.Errorf("failed to unmarshal screens: %w", err)
		}
	}
	if len(showtimes) > 0 {
		if err := json.Unmarshal(showtimes, &theater.Showtimes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedded showtimes: %w", err)
		}
	}

	return theater, nil
}
