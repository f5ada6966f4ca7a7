package service

import (
	"context"
	"fmt"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"
)

type TheaterService struct {
	theaterRepo *repository.TheaterRepository
}

func NewTheaterService(theaterRepo *repository.TheaterRepository) *TheaterService {
	return &TheaterService{
		theaterRepo: theaterRepo,
	}
}

func (s *TheaterService) List(ctx context.Context, location string, page, pageSize int) ([]models.ListTheatersResponseItem, error) {
	theaters, err := s.theaterRepo.List(ctx, location, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list theaters: %w", err)
	}

	result := make([]models.ListTheatersResponseItem, len(theaters))
	for i, theater := range theaters {
		result[i] = models.ListTheatersResponseItem{
			ID:          theater.ID,
			Name:        theater.Name,
			Location:    theater.Location,
			MovieTitles: theater.MovieTitles,
		}
	}

	return result, nil
}

// Get returns one theater with its screens and embedded showtimes
func (s *TheaterService) Get(ctx context.Context, id int64) (*models.Theater, error) {
	theater, err := s.theaterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %d: %w", id, apperrors.ErrNotFound)
	}

	return theater, nil
}

func (s *TheaterService) Create(ctx context.Context, req *models.CreateTheaterRequest) (*models.CreateResourceResponse, error) {
	if err := validateScreens(req.Screens); err != nil {
		return nil, err
	}

	theater := &models.Theater{
		Name:     req.Name,
		Location: req.Location,
		Screens:  req.Screens,
	}

	if err := s.theaterRepo.Create(ctx, theater); err != nil {
		return nil, fmt.Errorf("failed to create theater: %w", err)
	}

	return &models.CreateResourceResponse{ID: theater.ID}, nil
}

func (s *TheaterService) Update(ctx context.Context, id int64, req *models.CreateTheaterRequest) error {
	if err := validateScreens(req.Screens); err != nil {
		return err
	}

	theater, err := s.theaterRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get theater: %w", err)
	}
	if theater == nil {
		return fmt.Errorf("theater %d: %w", id, apperrors.ErrNotFound)
	}

	theater.Name = req.Name
	theater.Location = req.Location
	theater.Screens = req.Screens

	if err := s.theaterRepo.Update(ctx, theater); err != nil {
		return fmt.Errorf("failed to update theater: %w", err)
	}

	return nil
}

func (s *TheaterService) Delete(ctx context.Context, id int64) error {
	if err := s.theaterRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete theater: %w", err)
	}

	return nil
}

func validateScreens(screens []models.Screen) error {
	if len(screens) == 0 {
		return fmt.Errorf("theater needs at least one screen")
	}

	for _, screen := range screens {
		if screen.Name == "" {
			return fmt.Errorf("screen name must not be empty")
		}
		if screen.SeatRows < 1 || screen.SeatRows > maxSeatRows {
			return fmt.Errorf("screen %s: seat rows must be between 1 and %d", screen.Name, maxSeatRows)
		}
		if screen.SeatsPerRow < 1 {
			return fmt.Errorf("screen %s: seats per row must be positive", screen.Name)
		}
	}

	return nil
}
