package service

import (
	"context"
	"fmt"
	"strconv"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"
)

type AdminService struct {
	userRepo    *repository.UserRepository
	movieRepo   *repository.MovieRepository
	theaterRepo *repository.TheaterRepository
	bookingRepo *repository.BookingRepository
}

func NewAdminService(userRepo *repository.UserRepository, movieRepo *repository.MovieRepository, theaterRepo *repository.TheaterRepository, bookingRepo *repository.BookingRepository) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		movieRepo:   movieRepo,
		theaterRepo: theaterRepo,
		bookingRepo: bookingRepo,
	}
}

// Analytics collects the dashboard totals. Revenue counts confirmed
// bookings only and is formatted as a decimal string of whole currency
// units.
func (s *AdminService) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	users, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	movies, err := s.movieRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	theaters, err := s.theaterRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count theaters: %w", err)
	}

	bookings, err := s.bookingRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	soldSeats, revenue, err := s.bookingRepo.SalesTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales totals: %w", err)
	}

	return &models.AnalyticsResponse{
		TotalUsers:    users,
		TotalMovies:   movies,
		TotalTheaters: theaters,
		TotalBookings: bookings,
		SoldSeats:     soldSeats,
		TotalRevenue:  strconv.FormatInt(revenue, 10),
	}, nil
}

func (s *AdminService) ListBookings(ctx context.Context, filter models.AdminBookingFilter) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListAdmin(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// UpdateBookingStatus force-sets a booking status from the admin panel.
// Releasing seats on cancellation is its side effect so the seat map
// reflects the change immediately.
func (s *AdminService) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case models.BookingStatusCreated, models.BookingStatusConfirmed,
		models.BookingStatusCancelled, models.BookingStatusExpired:
	default:
		return fmt.Errorf("unknown booking status %q", status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %d: %w", id, apperrors.ErrNotFound)
	}

	if status == models.BookingStatusCancelled || status == models.BookingStatusExpired {
		if err := s.bookingRepo.ReleaseSeats(ctx, booking.ID); err != nil {
			return fmt.Errorf("failed to release seats: %w", err)
		}
		booking.PaymentStatus = models.PaymentStatusCancelled
	}

	booking.Status = status

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}
