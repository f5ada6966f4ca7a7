package consumers

import (
	"context"
	"log/slog"

	"kinoplex/internal/config"
	"kinoplex/internal/consumers/jobs"
	"kinoplex/internal/database"
	"kinoplex/internal/messaging"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"
	"kinoplex/internal/search"
)

const queueGroup = "consumers"

type ConsumerService struct {
	db            *database.DB
	nats          *messaging.NATSClient
	repos         *repository.Repositories
	handlers      *Handlers
	expirationJob *jobs.BookingExpirationJob
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	var esClient *search.ElasticsearchClient
	if cfg.SearchEnabled {
		esClient, err = search.NewElasticsearchClient(config.LoadElasticsearchConfig())
		if err != nil {
			return nil, err
		}
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(repos, esClient)
	expirationJob := jobs.NewBookingExpirationJob(repos.Bookings, natsClient)

	return &ConsumerService{
		db:            db,
		nats:          natsClient,
		repos:         repos,
		handlers:      handlers,
		expirationJob: expirationJob,
	}, nil
}

func (cs *ConsumerService) Start(ctx context.Context) error {
	slog.Info("Starting NATS consumers...")

	if _, err := cs.nats.SubscribeQueue(models.EventBookingCreated, queueGroup, cs.handlers.HandleBookingCreated); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.EventBookingCancelled, queueGroup, cs.handlers.HandleBookingCancelled); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.EventBookingExpired, queueGroup, cs.handlers.HandleBookingExpired); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.EventPaymentCompleted, queueGroup, cs.handlers.HandlePaymentCompleted); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.EventPaymentFailed, queueGroup, cs.handlers.HandlePaymentFailed); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.EventMovieUpdated, queueGroup, cs.handlers.HandleMovieUpdated); err != nil {
		return err
	}

	cs.expirationJob.Start(ctx)

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	cs.expirationJob.Stop()

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
