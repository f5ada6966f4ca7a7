package repository

import (
	"context"
	"database/sql"

	"kinoplex/internal/database"
	"kinoplex/internal/models"
)

type ShowtimeRepository struct {
	db *database.DB
}

func NewShowtimeRepository(db *database.DB) *ShowtimeRepository {
	return &ShowtimeRepository{db: db}
}

const showtimeColumns = `id, movie_id, movie_title, theater_id, theater_name, screen_name, starts_at, price, seat_rows, seats_per_row`

// Create inserts the canonical showtime row. The embedded copies on the
// movie and theater documents are written by their own repositories.
func (r *ShowtimeRepository) Create(ctx context.Context, showtime *models.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, movie_title, theater_id, theater_name, screen_name, starts_at, price, seat_rows, seats_per_row)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.MovieTitle,
		showtime.TheaterID,
		showtime.TheaterName,
		showtime.ScreenName,
		showtime.StartsAt,
		showtime.Price,
		showtime.SeatRows,
		showtime.SeatsPerRow,
	)
	return err
}

func (r *ShowtimeRepository) GetByID(ctx context.Context, id string) (*models.Showtime, error) {
	showtime := &models.Showtime{}
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.MovieTitle,
		&showtime.TheaterID,
		&showtime.TheaterName,
		&showtime.ScreenName,
		&showtime.StartsAt,
		&showtime.Price,
		&showtime.SeatRows,
		&showtime.SeatsPerRow,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return showtime, err
}

// BookedSeats returns the seat codes already reserved for a showtime.
func (r *ShowtimeRepository) BookedSeats(ctx context.Context, showtimeID string) ([]string, error) {
	query := `SELECT seat_code FROM booking_seats WHERE showtime_id = $1 ORDER BY seat_code`

	rows, err := r.db.QueryContext(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return codes, rows.Err()
}
