package service

import (
	"context"
	"fmt"
	"time"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/logger"
	"kinoplex/internal/messaging"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"
	"kinoplex/internal/search"
)

type MovieService struct {
	movieRepo  *repository.MovieRepository
	esClient   *search.ElasticsearchClient // nil when search is disabled
	natsClient *messaging.NATSClient
}

func NewMovieService(movieRepo *repository.MovieRepository, esClient *search.ElasticsearchClient, natsClient *messaging.NATSClient) *MovieService {
	return &MovieService{
		movieRepo:  movieRepo,
		esClient:   esClient,
		natsClient: natsClient,
	}
}

// List serves the movie catalog with optional filtering. Elasticsearch is
// used when configured; on any search error the request falls back to the
// Postgres full-text path so the catalog stays available.
func (s *MovieService) List(ctx context.Context, filter models.MovieFilter) (*models.ListMoviesResponse, error) {
	if s.esClient != nil {
		resp, err := s.listFromSearch(ctx, filter)
		if err == nil {
			return resp, nil
		}
		logger.WithContext(ctx).Warn("Search backend unavailable, falling back to database",
			"error", err)
	}

	movies, err := s.movieRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	total, err := s.movieRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	return buildMoviesResponse(movies, filter, total), nil
}

func (s *MovieService) listFromSearch(ctx context.Context, filter models.MovieFilter) (*models.ListMoviesResponse, error) {
	movies, err := s.esClient.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.esClient.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return buildMoviesResponse(movies, filter, total), nil
}

func buildMoviesResponse(movies []models.Movie, filter models.MovieFilter, total int64) *models.ListMoviesResponse {
	items := make([]models.ListMoviesResponseItem, len(movies))
	for i, movie := range movies {
		items[i] = models.ListMoviesResponseItem{
			ID:          movie.ID,
			Title:       movie.Title,
			Genre:       movie.Genre,
			Language:    movie.Language,
			Rating:      movie.Rating,
			ReleaseDate: movie.ReleaseDate,
			PosterURL:   movie.PosterURL,
		}
	}

	return &models.ListMoviesResponse{
		Movies:   items,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}
}

// Get returns one movie with its embedded showtimes
func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, apperrors.ErrNotFound)
	}

	return movie, nil
}

func (s *MovieService) Create(ctx context.Context, req *models.CreateMovieRequest) (*models.CreateResourceResponse, error) {
	movie := &models.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Language:    req.Language,
		Rating:      req.Rating,
		ReleaseDate: req.ReleaseDate,
		RuntimeMin:  req.RuntimeMin,
		Overview:    req.Overview,
		PosterURL:   req.PosterURL,
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.publishMovieUpdated(ctx, movie.ID, false)

	return &models.CreateResourceResponse{ID: movie.ID}, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, req *models.CreateMovieRequest) error {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %d: %w", id, apperrors.ErrNotFound)
	}

	movie.Title = req.Title
	movie.Genre = req.Genre
	movie.Language = req.Language
	movie.Rating = req.Rating
	movie.ReleaseDate = req.ReleaseDate
	movie.RuntimeMin = req.RuntimeMin
	movie.Overview = req.Overview
	movie.PosterURL = req.PosterURL

	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	s.publishMovieUpdated(ctx, id, false)

	return nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	s.publishMovieUpdated(ctx, id, true)

	return nil
}

// publishMovieUpdated notifies consumers so the search index follows admin
// writes. Publish failures are logged, not surfaced; the write already
// happened.
func (s *MovieService) publishMovieUpdated(ctx context.Context, movieID int64, deleted bool) {
	event := models.MovieUpdatedEvent{
		MovieID:   movieID,
		Deleted:   deleted,
		Timestamp: time.Now(),
	}

	if err := s.natsClient.Publish(models.EventMovieUpdated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish movie updated event",
			"error", err,
			"movie_id", movieID,
			"event_type", "movie.updated")
	}
}
