package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"kinoplex/internal/models"
	"kinoplex/internal/repository"
	"kinoplex/internal/search"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos    *repository.Repositories
	esClient *search.ElasticsearchClient // nil when search is disabled
}

func NewHandlers(repos *repository.Repositories, esClient *search.ElasticsearchClient) *Handlers {
	return &Handlers{
		repos:    repos,
		esClient: esClient,
	}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Processing booking created event",
		"booking_id", event.BookingID,
		"showtime_id", event.ShowtimeID,
		"seats_count", event.SeatsCount)

	m.Ack()
}

func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Processing booking cancelled event",
		"booking_id", event.BookingID,
		"reason", event.Reason)

	m.Ack()
}

func (h *Handlers) HandleBookingExpired(m *stan.Msg) {
	var event models.BookingExpiredEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking expired event", "error", err)
		return
	}

	slog.Info("Processing booking expired event",
		"booking_id", event.BookingID,
		"showtime_id", event.ShowtimeID)

	m.Ack()
}

// HandlePaymentCompleted re-applies the confirmed state so the booking ends
// up consistent even if the API crashed between gateway callback and update.
func (h *Handlers) HandlePaymentCompleted(m *stan.Msg) {
	var event models.PaymentCompletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment completed event", "error", err)
		return
	}

	slog.Info("Processing payment completed event",
		"booking_id", event.BookingID,
		"payment_id", event.PaymentID)

	ctx := context.Background()
	booking, err := h.repos.Bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		slog.Error("Failed to get booking", "booking_id", event.BookingID, "error", err)
		return
	}

	if booking != nil && booking.Status != models.BookingStatusConfirmed {
		booking.Status = models.BookingStatusConfirmed
		booking.PaymentStatus = models.PaymentStatusCompleted
		if err := h.repos.Bookings.Update(ctx, booking); err != nil {
			slog.Error("Failed to update booking", "booking_id", event.BookingID, "error", err)
			return
		}
	}

	m.Ack()
}

func (h *Handlers) HandlePaymentFailed(m *stan.Msg) {
	var event models.PaymentFailedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment failed event", "error", err)
		return
	}

	slog.Info("Processing payment failed event",
		"booking_id", event.BookingID,
		"payment_id", event.PaymentID,
		"reason", event.Reason)

	ctx := context.Background()
	booking, err := h.repos.Bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		slog.Error("Failed to get booking", "booking_id", event.BookingID, "error", err)
		return
	}

	if booking != nil && booking.Status != models.BookingStatusCancelled {
		if err := h.repos.Bookings.ReleaseSeats(ctx, booking.ID); err != nil {
			slog.Error("Failed to release seats", "booking_id", booking.ID, "error", err)
		}

		booking.Status = models.BookingStatusCancelled
		booking.PaymentStatus = models.PaymentStatusFailed
		if err := h.repos.Bookings.Update(ctx, booking); err != nil {
			slog.Error("Failed to update booking", "booking_id", event.BookingID, "error", err)
			return
		}
	}

	m.Ack()
}

// HandleMovieUpdated refreshes the search document after an admin write
func (h *Handlers) HandleMovieUpdated(m *stan.Msg) {
	var event models.MovieUpdatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal movie updated event", "error", err)
		return
	}

	if h.esClient == nil {
		m.Ack()
		return
	}

	ctx := context.Background()

	if event.Deleted {
		if err := h.esClient.DeleteMovie(ctx, event.MovieID); err != nil {
			slog.Error("Failed to delete movie from index", "movie_id", event.MovieID, "error", err)
			return
		}
		slog.Info("Removed movie from search index", "movie_id", event.MovieID)
		m.Ack()
		return
	}

	movie, err := h.repos.Movies.GetByID(ctx, event.MovieID)
	if err != nil {
		slog.Error("Failed to get movie", "movie_id", event.MovieID, "error", err)
		return
	}
	if movie == nil {
		m.Ack()
		return
	}

	if err := h.esClient.IndexMovie(ctx, movie); err != nil {
		slog.Error("Failed to index movie", "movie_id", event.MovieID, "error", err)
		return
	}

	slog.Info("Reindexed movie", "movie_id", event.MovieID)
	m.Ack()
}
