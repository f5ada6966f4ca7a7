package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"kinoplex/internal/config"
	"kinoplex/internal/database"
	"kinoplex/internal/logger"
	"kinoplex/internal/repository"
	"kinoplex/internal/search"

	"github.com/joho/godotenv"
)

// reindex rebuilds the Elasticsearch movie index from Postgres. Run it after
// enabling search on an existing database or when the index drifted.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting search reindex")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		log.Fatalf("Failed to connect to Elasticsearch: %v", err)
	}

	movieRepo := repository.NewMovieRepository(db)

	if err := reindexMovies(context.Background(), movieRepo, esClient); err != nil {
		log.Fatalf("Reindex failed: %v", err)
	}

	slog.Info("Reindex completed successfully")
}

func reindexMovies(ctx context.Context, movieRepo *repository.MovieRepository, esClient *search.ElasticsearchClient) error {
	start := time.Now()

	movies, err := movieRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	slog.Info("Indexing movies", "count", len(movies))

	indexed := 0
	for i := range movies {
		if err := esClient.IndexMovie(ctx, &movies[i]); err != nil {
			slog.Error("Failed to index movie",
				"movie_id", movies[i].ID,
				"title", movies[i].Title,
				"error", err)
			continue
		}
		indexed++
	}

	slog.Info("Reindex finished",
		"indexed", indexed,
		"failed", len(movies)-indexed,
		"elapsed", time.Since(start).String())

	return nil
}
