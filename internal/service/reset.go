package service

import (
	"context"
	"log/slog"

	"kinoplex/internal/repository"
)

type ResetService struct {
	bookingRepo *repository.BookingRepository
}

func NewResetService(bookingRepo *repository.BookingRepository) *ResetService {
	return &ResetService{
		bookingRepo: bookingRepo,
	}
}

// ResetDatabase removes all bookings with their seat reservations, which
// frees every seat since seat maps are derived from reservation rows.
func (s *ResetService) ResetDatabase(ctx context.Context) error {
	slog.Info("Starting database reset")

	if err := s.bookingRepo.DeleteAll(ctx); err != nil {
		slog.Error("Failed to delete all bookings", "error", err)
		return err
	}

	slog.Info("Database reset completed successfully")
	return nil
}
