package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kinoplex/internal/cache"
	"kinoplex/internal/config"
	"kinoplex/internal/database"
	"kinoplex/internal/external"
	"kinoplex/internal/logger"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	pages         = flag.Int("pages", 3, "Number of TMDB popular pages to fetch")
	clearExisting = flag.Bool("clear", false, "Clear existing bookings before seeding")
	dryRun        = flag.Bool("dry-run", false, "Show what would be seeded without writing")
)

// showtimeSlots are the daily screening times, paired with a price in the
// smallest currency unit.
var showtimeSlots = []struct {
	hour  int
	price int64
}{
	{12, 150000},
	{15, 180000},
	{18, 220000},
	{21, 250000},
}

type Seeder struct {
	db    *database.DB
	repos *repository.Repositories
	tmdb  *external.TMDBClient
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting catalog seeder...", "pages", *pages, "dry_run", *dryRun)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{
		db:    db,
		repos: repository.NewRepositories(db),
		tmdb:  external.NewTMDBClient(cfg.TMDB),
	}

	ctx := context.Background()

	if *clearExisting && !*dryRun {
		if err := seeder.repos.Bookings.DeleteAll(ctx); err != nil {
			slog.Error("Failed to clear bookings", "error", err)
			os.Exit(1)
		}
		slog.Info("Cleared existing bookings")
	}

	movies, err := seeder.seedMovies(ctx)
	if err != nil {
		slog.Error("Failed to seed movies", "error", err)
		os.Exit(1)
	}

	theaters, err := seeder.seedTheaters(ctx)
	if err != nil {
		slog.Error("Failed to seed theaters", "error", err)
		os.Exit(1)
	}

	if err := seeder.seedShowtimes(ctx, movies, theaters); err != nil {
		slog.Error("Failed to seed showtimes", "error", err)
		os.Exit(1)
	}

	if err := seeder.seedAdminUser(ctx); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	if !*dryRun {
		if valkey, err := cache.NewValkeyClient(); err == nil {
			valkey.InvalidateMovies(ctx)
			valkey.Close()
		} else {
			slog.Warn("Valkey unavailable, skipping cache invalidation", "error", err)
		}
	}

	slog.Info("Seeding completed successfully!",
		"movies", len(movies),
		"theaters", len(theaters))
}

// seedMovies pulls the popular list from TMDB page by page and upserts each
// movie by its TMDB id. When every page fails the built-in fallback catalog
// keeps the environment usable offline.
func (s *Seeder) seedMovies(ctx context.Context) ([]models.Movie, error) {
	genres := s.tmdb.GenreMap(ctx)

	var fetched []external.TMDBMovie
	for page := 1; page <= *pages; page++ {
		pageMovies, err := s.tmdb.PopularMovies(ctx, page)
		if err != nil {
			slog.Warn("Failed to fetch TMDB page", "page", page, "error", err)
			continue
		}
		fetched = append(fetched, pageMovies...)
	}

	if len(fetched) == 0 {
		slog.Warn("No movies fetched from TMDB, using fallback catalog")
		fetched = external.FallbackCatalog()
	}

	var movies []models.Movie
	for _, tm := range fetched {
		movie := s.movieFromTMDB(ctx, tm, genres)

		if *dryRun {
			slog.Info("Would seed movie", "tmdb_id", movie.TMDBID, "title", movie.Title)
			movies = append(movies, movie)
			continue
		}

		if err := s.repos.Movies.Upsert(ctx, &movie); err != nil {
			slog.Error("Failed to upsert movie", "title", movie.Title, "error", err)
			continue
		}
		movies = append(movies, movie)
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("no movies were seeded")
	}

	slog.Info("Seeded movies", "count", len(movies))
	return movies, nil
}

func (s *Seeder) movieFromTMDB(ctx context.Context, tm external.TMDBMovie, genres map[int]string) models.Movie {
	movie := models.Movie{
		TMDBID:    tm.ID,
		Title:     tm.Title,
		Language:  tm.OriginalLanguage,
		Rating:    tm.VoteAverage,
		Overview:  tm.Overview,
		PosterURL: s.tmdb.PosterURL(tm.PosterPath),
	}

	if len(tm.GenreIDs) > 0 {
		movie.Genre = genres[tm.GenreIDs[0]]
	}

	if tm.ReleaseDate != "" {
		if released, err := time.Parse("2006-01-02", tm.ReleaseDate); err == nil {
			movie.ReleaseDate = &released
		}
	}

	// The list endpoint has no runtime; tolerate detail failures and keep
	// seeding with what we have.
	if details, err := s.tmdb.MovieDetails(ctx, tm.ID); err == nil {
		movie.RuntimeMin = details.Runtime
	} else {
		slog.Warn("Failed to fetch movie details", "tmdb_id", tm.ID, "error", err)
	}

	return movie
}

// seedTheaters creates the static theater set, skipping ones already present
func (s *Seeder) seedTheaters(ctx context.Context) ([]models.Theater, error) {
	catalog := []models.Theater{
		{
			Name:     "Kinoplex Grand",
			Location: "Almaty",
			Screens: []models.Screen{
				{Name: "Screen 1", SeatRows: 10, SeatsPerRow: 16},
				{Name: "Screen 2", SeatRows: 8, SeatsPerRow: 12},
				{Name: "IMAX", SeatRows: 14, SeatsPerRow: 20},
			},
		},
		{
			Name:     "Kinoplex City Center",
			Location: "Astana",
			Screens: []models.Screen{
				{Name: "Screen 1", SeatRows: 9, SeatsPerRow: 14},
				{Name: "Screen 2", SeatRows: 7, SeatsPerRow: 10},
			},
		},
		{
			Name:     "Kinoplex Riverside",
			Location: "Shymkent",
			Screens: []models.Screen{
				{Name: "Screen 1", SeatRows: 10, SeatsPerRow: 12},
				{Name: "Screen 2", SeatRows: 6, SeatsPerRow: 10},
				{Name: "Screen 3", SeatRows: 8, SeatsPerRow: 14},
			},
		},
	}

	var theaters []models.Theater
	for _, theater := range catalog {
		existing, err := s.repos.Theaters.GetByName(ctx, theater.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			theaters = append(theaters, *existing)
			continue
		}

		if *dryRun {
			slog.Info("Would seed theater", "name", theater.Name, "screens", len(theater.Screens))
			theaters = append(theaters, theater)
			continue
		}

		if err := s.repos.Theaters.Create(ctx, &theater); err != nil {
			return nil, err
		}
		theaters = append(theaters, theater)
	}

	slog.Info("Seeded theaters", "count", len(theaters))
	return theaters, nil
}

// seedShowtimes cross-references movies and theaters round-robin over the
// next 7 days and writes each showtime three times: the canonical row plus
// the embedded copies on the movie and the theater.
func (s *Seeder) seedShowtimes(ctx context.Context, movies []models.Movie, theaters []models.Theater) error {
	if *dryRun {
		slog.Info("Would seed showtimes",
			"movies", len(movies),
			"theaters", len(theaters),
			"days", 7,
			"slots_per_day", len(showtimeSlots))
		return nil
	}

	today := time.Now().Truncate(24 * time.Hour)
	movieIdx := 0
	created := 0

	for day := 0; day < 7; day++ {
		date := today.AddDate(0, 0, day)

		for ti := range theaters {
			theater := &theaters[ti]

			for _, screen := range theater.Screens {
				for _, slot := range showtimeSlots {
					movie := &movies[movieIdx%len(movies)]
					movieIdx++

					if movie.ID == 0 {
						continue
					}

					showtime := models.Showtime{
						ID:          uuid.New().String(),
						MovieID:     movie.ID,
						MovieTitle:  movie.Title,
						TheaterID:   theater.ID,
						TheaterName: theater.Name,
						ScreenName:  screen.Name,
						StartsAt:    time.Date(date.Year(), date.Month(), date.Day(), slot.hour, 0, 0, 0, time.Local),
						Price:       slot.price,
						SeatRows:    screen.SeatRows,
						SeatsPerRow: screen.SeatsPerRow,
					}

					if err := s.repos.Showtimes.Create(ctx, &showtime); err != nil {
						slog.Error("Failed to create showtime",
							"movie", movie.Title,
							"theater", theater.Name,
							"error", err)
						continue
					}

					if err := s.repos.Movies.AppendShowtime(ctx, movie.ID, showtime); err != nil {
						slog.Error("Failed to append showtime to movie", "movie_id", movie.ID, "error", err)
					}
					if err := s.repos.Theaters.AppendShowtime(ctx, theater.ID, showtime); err != nil {
						slog.Error("Failed to append showtime to theater", "theater_id", theater.ID, "error", err)
					}

					created++
				}
			}
		}
	}

	slog.Info("Seeded showtimes", "count", created)
	return nil
}

// seedAdminUser makes sure the admin panel has a login to start with
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	email := getEnvDefault("SEED_ADMIN_EMAIL", "admin@kinoplex.local")

	existing, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if *dryRun {
		slog.Info("Would seed admin user", "email", email)
		return nil
	}

	password := getEnvDefault("SEED_ADMIN_PASSWORD", "admin123")
	hash := sha256.Sum256([]byte(password))

	user := &models.User{
		Email:        email,
		PasswordHash: fmt.Sprintf("%x", hash),
		FirstName:    "Admin",
		Surname:      "Kinoplex",
		IsAdmin:      true,
		IsActive:     true,
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		return err
	}

	slog.Info("Seeded admin user", "email", email)
	return nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
