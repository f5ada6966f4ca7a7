package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	Surname      string    `json:"surname" db:"surname"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	LastLoggedIn time.Time `json:"last_logged_in" db:"last_logged_in"`
}

// Movie represents a movie in the catalog. Showtimes holds the embedded
// copies written at seed/admin time; the canonical rows live in the
// showtimes table and nothing reconciles the two after a write.
type Movie struct {
	ID          int64      `json:"id" db:"id"`
	TMDBID      int64      `json:"tmdb_id,omitempty" db:"tmdb_id"`
	Title       string     `json:"title" db:"title"`
	Genre       string     `json:"genre" db:"genre"`
	Language    string     `json:"language" db:"language"`
	Rating      float32    `json:"rating" db:"rating"`
	ReleaseDate *time.Time `json:"release_date" db:"release_date"`
	RuntimeMin  int        `json:"runtime_min" db:"runtime_min"`
	Overview    string     `json:"overview,omitempty" db:"overview"`
	PosterURL   string     `json:"poster_url,omitempty" db:"poster_url"`
	Showtimes   []Showtime `json:"showtimes,omitempty" db:"showtimes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Screen describes one auditorium of a theater. Seat maps for its showtimes
// are generated from these dimensions, never stored.
type Screen struct {
	Name        string `json:"name"`
	SeatRows    int    `json:"seat_rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

// Theater represents a theater with its own denormalized copies of the
// showtimes it hosts and the titles currently playing.
type Theater struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Location    string     `json:"location" db:"location"`
	Screens     []Screen   `json:"screens" db:"screens"`
	Showtimes   []Showtime `json:"showtimes,omitempty" db:"showtimes"`
	MovieTitles []string   `json:"movie_titles,omitempty" db:"movie_titles"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Showtime is the canonical screening record used by the booking path.
// MovieTitle and TheaterName are denormalized so list responses need no joins.
type Showtime struct {
	ID          string    `json:"id" db:"id"`
	MovieID     int64     `json:"movie_id" db:"movie_id"`
	MovieTitle  string    `json:"movie_title" db:"movie_title"`
	TheaterID   int64     `json:"theater_id" db:"theater_id"`
	TheaterName string    `json:"theater_name" db:"theater_name"`
	ScreenName  string    `json:"screen_name" db:"screen_name"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	Price       int64     `json:"price" db:"price"`
	SeatRows    int       `json:"seat_rows" db:"seat_rows"`
	SeatsPerRow int       `json:"seats_per_row" db:"seats_per_row"`
}

// Booking represents a booking in the system
type Booking struct {
	ID            int64         `json:"id" db:"id"`
	UserID        *int64        `json:"user_id" db:"user_id"`
	ShowtimeID    string        `json:"showtime_id" db:"showtime_id"`
	MovieTitle    string        `json:"movie_title" db:"movie_title"`
	TheaterName   string        `json:"theater_name" db:"theater_name"`
	SeatsCount    int           `json:"seats_count" db:"seats_count"`
	TotalAmount   int64         `json:"total_amount" db:"total_amount"`
	Status        string        `json:"status" db:"status"`
	PaymentStatus string        `json:"payment_status" db:"payment_status"`
	PaymentID     *string       `json:"payment_id,omitempty" db:"payment_id"`
	OrderID       *string       `json:"order_id,omitempty" db:"order_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
	Seats         []BookingSeat `json:"seats,omitempty"` // Not from DB, filled separately
}

// Booking status values
const (
	BookingStatusCreated   = "CREATED"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusExpired   = "EXPIRED"
)

// Payment status values
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusInitiated = "INITIATED"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"
)

// BookingSeat holds one reserved seat of a booking. The (showtime_id,
// seat_code) pair is unique, which is what rules out double booking.
type BookingSeat struct {
	ID         int64     `json:"id" db:"id"`
	BookingID  int64     `json:"booking_id" db:"booking_id"`
	ShowtimeID string    `json:"showtime_id" db:"showtime_id"`
	SeatCode   string    `json:"seat_code" db:"seat_code"`
	Price      int64     `json:"price" db:"price"`
	ReservedAt time.Time `json:"reserved_at" db:"reserved_at"`
}
