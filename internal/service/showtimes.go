package service

import (
	"context"
	"fmt"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/logger"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"

	"github.com/google/uuid"
)

type ShowtimeService struct {
	showtimeRepo *repository.ShowtimeRepository
	movieRepo    *repository.MovieRepository
	theaterRepo  *repository.TheaterRepository
}

func NewShowtimeService(showtimeRepo *repository.ShowtimeRepository, movieRepo *repository.MovieRepository, theaterRepo *repository.TheaterRepository) *ShowtimeService {
	return &ShowtimeService{
		showtimeRepo: showtimeRepo,
		movieRepo:    movieRepo,
		theaterRepo:  theaterRepo,
	}
}

// Create schedules a screening and writes the denormalized copies into the
// movie and theater documents. The copies are append-only and nothing
// reconciles them afterwards, so a failure there is logged and tolerated.
func (s *ShowtimeService) Create(ctx context.Context, req *models.CreateShowtimeRequest) (*models.CreateShowtimeResponse, error) {
	movie, err := s.movieRepo.GetByID(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", req.MovieID, apperrors.ErrNotFound)
	}

	theater, err := s.theaterRepo.GetByID(ctx, req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %d: %w", req.TheaterID, apperrors.ErrNotFound)
	}

	screen := findScreen(theater, req.ScreenName)
	if screen == nil {
		return nil, fmt.Errorf("screen %s in theater %d: %w", req.ScreenName, theater.ID, apperrors.ErrUnknownScreen)
	}

	showtime := &models.Showtime{
		ID:          uuid.New().String(),
		MovieID:     movie.ID,
		MovieTitle:  movie.Title,
		TheaterID:   theater.ID,
		TheaterName: theater.Name,
		ScreenName:  screen.Name,
		StartsAt:    req.StartsAt,
		Price:       req.Price,
		SeatRows:    screen.SeatRows,
		SeatsPerRow: screen.SeatsPerRow,
	}

	if err := s.showtimeRepo.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	if err := s.movieRepo.AppendShowtime(ctx, movie.ID, *showtime); err != nil {
		logger.WithContext(ctx).Error("Failed to append showtime to movie document",
			"error", err,
			"movie_id", movie.ID,
			"showtime_id", showtime.ID)
	}
	if err := s.theaterRepo.AppendShowtime(ctx, theater.ID, *showtime); err != nil {
		logger.WithContext(ctx).Error("Failed to append showtime to theater document",
			"error", err,
			"theater_id", theater.ID,
			"showtime_id", showtime.ID)
	}

	return &models.CreateShowtimeResponse{ID: showtime.ID}, nil
}

// SeatMap generates the current seat map of a showtime
func (s *ShowtimeService) SeatMap(ctx context.Context, showtimeID string) (*models.SeatMapResponse, error) {
	showtime, err := s.showtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, apperrors.ErrNotFound)
	}

	booked, err := s.showtimeRepo.BookedSeats(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}

	seatMap := BuildSeatMap(showtime, booked)
	return &seatMap, nil
}

func findScreen(theater *models.Theater, name string) *models.Screen {
	for i := range theater.Screens {
		if theater.Screens[i].Name == name {
			return &theater.Screens[i]
		}
	}
	return nil
}
