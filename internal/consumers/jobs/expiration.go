package jobs

import (
	"context"
	"log/slog"
	"time"

	"kinoplex/internal/messaging"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"
)

const (
	BookingExpirationTimeout = 15 * time.Minute
	checkInterval            = 30 * time.Second
)

// BookingExpirationJob cancels bookings whose payment was never initiated
// within the timeout, freeing their seats for other buyers.
type BookingExpirationJob struct {
	bookingRepo *repository.BookingRepository
	natsClient  *messaging.NATSClient
	ticker      *time.Ticker
	done        chan bool
}

func NewBookingExpirationJob(bookingRepo *repository.BookingRepository, natsClient *messaging.NATSClient) *BookingExpirationJob {
	return &BookingExpirationJob{
		bookingRepo: bookingRepo,
		natsClient:  natsClient,
		done:        make(chan bool),
	}
}

func (j *BookingExpirationJob) Start(ctx context.Context) {
	slog.Info("Starting booking expiration job",
		"check_interval", checkInterval.String(),
		"timeout", BookingExpirationTimeout.String())

	j.ticker = time.NewTicker(checkInterval)

	go j.checkExpiredBookings(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.checkExpiredBookings(ctx)
			case <-j.done:
				slog.Info("Booking expiration job stopped")
				return
			}
		}
	}()
}

func (j *BookingExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *BookingExpirationJob) checkExpiredBookings(ctx context.Context) {
	expirationTime := time.Now().Add(-BookingExpirationTimeout)

	expiredBookings, err := j.bookingRepo.GetExpired(ctx, expirationTime)
	if err != nil {
		slog.Error("Failed to get expired bookings", "error", err)
		return
	}

	if len(expiredBookings) == 0 {
		return
	}

	slog.Info("Found expired bookings to process", "count", len(expiredBookings))

	for _, booking := range expiredBookings {
		if err := j.expireBooking(ctx, &booking); err != nil {
			slog.Error("Failed to expire booking",
				"error", err,
				"booking_id", booking.ID,
				"created_at", booking.CreatedAt)
			continue
		}

		slog.Info("Expired booking",
			"booking_id", booking.ID,
			"showtime_id", booking.ShowtimeID,
			"elapsed_time", time.Since(booking.CreatedAt).String())
	}
}

func (j *BookingExpirationJob) expireBooking(ctx context.Context, booking *models.Booking) error {
	if err := j.bookingRepo.ReleaseSeats(ctx, booking.ID); err != nil {
		return err
	}

	booking.Status = models.BookingStatusExpired
	booking.PaymentStatus = models.PaymentStatusCancelled

	if err := j.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}

	event := models.BookingExpiredEvent{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		Timestamp:  time.Now(),
	}
	if err := j.natsClient.Publish(models.EventBookingExpired, event); err != nil {
		slog.Error("Failed to publish booking expired event",
			"error", err,
			"booking_id", booking.ID)
	}

	return nil
}
