package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kinoplex/internal/database"
	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/models"

	"github.com/lib/pq"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, showtime_id, movie_title, theater_name, seats_count, total_amount, status, payment_status, payment_id, order_id, created_at, updated_at`

// Create inserts the booking and its seats in one transaction. The unique
// (showtime_id, seat_code) constraint turns a lost race into ErrSeatTaken,
// so two requests can never hold the same seat.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking, seatCodes []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (user_id, showtime_id, movie_title, theater_name, seats_count, total_amount, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		booking.UserID,
		booking.ShowtimeID,
		booking.MovieTitle,
		booking.TheaterName,
		booking.SeatsCount,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	seatPrice := int64(0)
	if booking.SeatsCount > 0 {
		seatPrice = booking.TotalAmount / int64(booking.SeatsCount)
	}

	for _, code := range seatCodes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO booking_seats (booking_id, showtime_id, seat_code, price)
			VALUES ($1, $2, $3, $4)`,
			booking.ID, booking.ShowtimeID, code, seatPrice)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("seat %s: %w", code, apperrors.ErrSeatTaken)
			}
			return fmt.Errorf("failed to reserve seat %s: %w", code, err)
		}
	}

	return tx.Commit()
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

func (r *BookingRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE order_id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListAdmin returns bookings for the admin panel, optionally filtered by
// status and by a user name/email search term.
func (r *BookingRepository) ListAdmin(ctx context.Context, filter models.AdminBookingFilter) ([]models.Booking, error) {
	var args []interface{}
	argIndex := 1

	query := `
		SELECT b.id, b.user_id, b.showtime_id, b.movie_title, b.theater_name, b.seats_count,
		       b.total_amount, b.status, b.payment_status, b.payment_id, b.order_id, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN users u ON u.user_id = b.user_id
		WHERE 1=1`

	if filter.Status != "" {
		query += fmt.Sprintf(" AND b.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(
			" AND (LOWER(u.first_name || ' ' || u.surname) LIKE LOWER($%d) OR LOWER(u.email) LIKE LOWER($%d))",
			argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) GetSeats(ctx context.Context, bookingID int64) ([]models.BookingSeat, error) {
	query := `
		SELECT id, booking_id, showtime_id, seat_code, price, reserved_at
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY seat_code`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []models.BookingSeat
	for rows.Next() {
		var seat models.BookingSeat
		err := rows.Scan(&seat.ID, &seat.BookingID, &seat.ShowtimeID, &seat.SeatCode, &seat.Price, &seat.ReservedAt)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, total_amount = $3, payment_id = $4, order_id = $5, updated_at = $6
		WHERE id = $7`

	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.PaymentStatus,
		booking.TotalAmount,
		booking.PaymentID,
		booking.OrderID,
		booking.UpdatedAt,
		booking.ID,
	)
	return err
}

// ReleaseSeats frees every seat of a booking. Deleting the rows is what
// makes the codes available again for the showtime.
func (r *BookingRepository) ReleaseSeats(ctx context.Context, bookingID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, bookingID)
	return err
}

// GetExpired returns pending bookings created before the cutoff.
func (r *BookingRepository) GetExpired(ctx context.Context, before time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status = 'CREATED' AND payment_status = 'PENDING' AND created_at < $1`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	return count, err
}

// SalesTotals returns the number of sold seats and the revenue of confirmed bookings.
func (r *BookingRepository) SalesTotals(ctx context.Context) (int64, int64, error) {
	var soldSeats, revenue int64
	query := `
		SELECT COALESCE(SUM(seats_count), 0), COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE status = 'CONFIRMED'`

	err := r.db.QueryRowContext(ctx, query).Scan(&soldSeats, &revenue)
	return soldSeats, revenue, err
}

// DeleteAll clears bookings and their seats, used by the admin reset.
func (r *BookingRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings`)
	return err
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.MovieTitle,
		&booking.TheaterName,
		&booking.SeatsCount,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentID,
		&booking.OrderID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
