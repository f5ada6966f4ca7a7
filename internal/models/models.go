package models

import "time"

// MovieFilter carries the optional query parameters of GET /api/movies.
// Zero values mean "not set"; the repository builds the WHERE clause from
// whatever is present.
type MovieFilter struct {
	Query     string
	Genre     string
	Language  string
	MinRating float64
	Date      string // YYYY-MM-DD, matches against embedded showtimes
	Page      int
	PageSize  int
}

// ListMoviesResponseItem - list view of a movie, without embedded showtimes
type ListMoviesResponseItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Genre       string     `json:"genre"`
	Language    string     `json:"language"`
	Rating      float32    `json:"rating"`
	ReleaseDate *time.Time `json:"release_date"`
	PosterURL   string     `json:"poster_url,omitempty"`
}

// ListMoviesResponse - paginated movie list
type ListMoviesResponse struct {
	Movies   []ListMoviesResponseItem `json:"movies"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	Total    int64                    `json:"total"`
}

// ListTheatersResponseItem - list view of a theater
type ListTheatersResponseItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	MovieTitles []string `json:"movie_titles,omitempty"`
}

// CreateMovieRequest - admin payload for adding a movie
type CreateMovieRequest struct {
	Title       string     `json:"title" binding:"required"`
	Genre       string     `json:"genre"`
	Language    string     `json:"language"`
	Rating      float32    `json:"rating"`
	ReleaseDate *time.Time `json:"release_date"`
	RuntimeMin  int        `json:"runtime_min"`
	Overview    string     `json:"overview"`
	PosterURL   string     `json:"poster_url"`
}

// CreateTheaterRequest - admin payload for adding a theater
type CreateTheaterRequest struct {
	Name     string   `json:"name" binding:"required"`
	Location string   `json:"location" binding:"required"`
	Screens  []Screen `json:"screens" binding:"required"`
}

// CreateShowtimeRequest - admin payload for scheduling a screening
type CreateShowtimeRequest struct {
	MovieID    int64     `json:"movie_id" binding:"required"`
	TheaterID  int64     `json:"theater_id" binding:"required"`
	ScreenName string    `json:"screen_name" binding:"required"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	Price      int64     `json:"price" binding:"required"`
}

// CreateResourceResponse - generic id-only response for admin creates
type CreateResourceResponse struct {
	ID int64 `json:"id"`
}

// CreateShowtimeResponse - showtime creates return the generated UUID
type CreateShowtimeResponse struct {
	ID string `json:"id"`
}

// CreateBookingRequest - payload for creating a booking
type CreateBookingRequest struct {
	ShowtimeID string   `json:"showtime_id" binding:"required"`
	SeatCodes  []string `json:"seat_codes" binding:"required,min=1"`
}

// CreateBookingResponse - response after a booking was created
type CreateBookingResponse struct {
	ID          int64  `json:"id"`
	SeatsCount  int    `json:"seats_count"`
	TotalAmount int64  `json:"total_amount"`
	Status      string `json:"status"`
}

// ListBookingsResponseItem - element of the user's booking list
type ListBookingsResponseItem struct {
	ID            int64     `json:"id"`
	ShowtimeID    string    `json:"showtime_id"`
	MovieTitle    string    `json:"movie_title"`
	TheaterName   string    `json:"theater_name"`
	SeatsCount    int       `json:"seats_count"`
	TotalAmount   int64     `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// InitiatePaymentRequest - payload for initiating a payment
type InitiatePaymentRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

// CancelBookingRequest - payload for cancelling a booking
type CancelBookingRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

// UpdateBookingStatusRequest - admin payload for forcing a booking status
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminBookingFilter carries the optional parameters of GET /api/admin/bookings
type AdminBookingFilter struct {
	Status string
	Search string // matches user name or email
}

// SeatMapSeat - one seat of the generated seat map
type SeatMapSeat struct {
	Code   string `json:"code"`
	Status string `json:"status"` // available | booked
}

// SeatMapRow - one lettered row of the seat map
type SeatMapRow struct {
	Row   string        `json:"row"`
	Seats []SeatMapSeat `json:"seats"`
}

// SeatMapResponse - generated seat map for a showtime
type SeatMapResponse struct {
	ShowtimeID string       `json:"showtime_id"`
	Price      int64        `json:"price"`
	Rows       []SeatMapRow `json:"rows"`
}

// PaymentNotificationPayload - webhook payload from the payment gateway
type PaymentNotificationPayload struct {
	PaymentID string                 `json:"paymentId"`
	OrderID   string                 `json:"orderId"`
	Status    string                 `json:"status"`
	TeamSlug  string                 `json:"teamSlug"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// AnalyticsResponse - admin dashboard totals
type AnalyticsResponse struct {
	TotalUsers    int64  `json:"total_users"`
	TotalMovies   int64  `json:"total_movies"`
	TotalTheaters int64  `json:"total_theaters"`
	TotalBookings int64  `json:"total_bookings"`
	SoldSeats     int64  `json:"sold_seats"`
	TotalRevenue  string `json:"total_revenue"`
}
