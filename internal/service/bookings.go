package service

import (
	"context"
	"fmt"
	"time"

	apperrors "kinoplex/internal/errors"
	"kinoplex/internal/external"
	"kinoplex/internal/logger"
	"kinoplex/internal/messaging"
	"kinoplex/internal/middleware"
	"kinoplex/internal/models"
	"kinoplex/internal/repository"

	"github.com/google/uuid"
)

type BookingService struct {
	bookingRepo   *repository.BookingRepository
	showtimeRepo  *repository.ShowtimeRepository
	paymentClient *external.PaymentClient
	natsClient    *messaging.NATSClient
	publicBaseURL string
}

func NewBookingService(bookingRepo *repository.BookingRepository, showtimeRepo *repository.ShowtimeRepository, paymentClient *external.PaymentClient, natsClient *messaging.NATSClient, publicBaseURL string) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		showtimeRepo:  showtimeRepo,
		paymentClient: paymentClient,
		natsClient:    natsClient,
		publicBaseURL: publicBaseURL,
	}
}

// Create reserves the requested seats in one transaction. Seat codes are
// checked against the screen layout first; a code already taken surfaces as
// ErrSeatTaken from the unique constraint, whichever request commits second.
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	showtime, err := s.showtimeRepo.GetByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", req.ShowtimeID, apperrors.ErrNotFound)
	}

	seen := make(map[string]bool, len(req.SeatCodes))
	for _, code := range req.SeatCodes {
		if !ValidSeatCode(showtime, code) {
			return nil, fmt.Errorf("seat code %s does not exist in this screen", code)
		}
		if seen[code] {
			return nil, fmt.Errorf("seat code %s requested twice", code)
		}
		seen[code] = true
	}

	booking := &models.Booking{
		ShowtimeID:    showtime.ID,
		MovieTitle:    showtime.MovieTitle,
		TheaterName:   showtime.TheaterName,
		SeatsCount:    len(req.SeatCodes),
		TotalAmount:   showtime.Price * int64(len(req.SeatCodes)),
		Status:        models.BookingStatusCreated,
		PaymentStatus: models.PaymentStatusPending,
	}

	if id, ok := middleware.UserIDFromContext(ctx); ok {
		booking.UserID = &id
	}

	if err := s.bookingRepo.Create(ctx, booking, req.SeatCodes); err != nil {
		return nil, err
	}

	event := models.BookingCreatedEvent{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		UserID:     booking.UserID,
		SeatsCount: booking.SeatsCount,
		Timestamp:  time.Now(),
	}
	if err := s.natsClient.Publish(models.EventBookingCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", "booking.created")
	}

	return &models.CreateBookingResponse{
		ID:          booking.ID,
		SeatsCount:  booking.SeatsCount,
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status,
	}, nil
}

func (s *BookingService) List(ctx context.Context, userID int64) ([]models.ListBookingsResponseItem, error) {
	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	result := make([]models.ListBookingsResponseItem, len(bookings))
	for i, booking := range bookings {
		result[i] = models.ListBookingsResponseItem{
			ID:            booking.ID,
			ShowtimeID:    booking.ShowtimeID,
			MovieTitle:    booking.MovieTitle,
			TheaterName:   booking.TheaterName,
			SeatsCount:    booking.SeatsCount,
			TotalAmount:   booking.TotalAmount,
			Status:        booking.Status,
			PaymentStatus: booking.PaymentStatus,
			CreatedAt:     booking.CreatedAt,
		}
	}

	return result, nil
}

// Get returns one booking with its seats
func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", id, apperrors.ErrNotFound)
	}

	seats, err := s.bookingRepo.GetSeats(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking seats: %w", err)
	}
	booking.Seats = seats

	return booking, nil
}

// InitiatePayment registers the booking with the payment gateway and returns
// the gateway URL the client is redirected to.
func (s *BookingService) InitiatePayment(ctx context.Context, req *models.InitiatePaymentRequest) (string, error) {
	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return "", fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return "", fmt.Errorf("booking %d: %w", req.BookingID, apperrors.ErrNotFound)
	}

	if booking.Status != models.BookingStatusCreated {
		return "", fmt.Errorf("booking %d is %s, payment can no longer be initiated", booking.ID, booking.Status)
	}

	orderID := uuid.New().String()

	paymentResp, err := s.paymentClient.InitPayment(ctx, external.InitPaymentParams{
		Amount:          booking.TotalAmount,
		OrderID:         orderID,
		Currency:        "KZT",
		Description:     fmt.Sprintf("Movie tickets: %s", booking.MovieTitle),
		SuccessURL:      s.publicBaseURL + "/api/payments/success?orderId=" + orderID,
		FailURL:         s.publicBaseURL + "/api/payments/fail?orderId=" + orderID,
		NotificationURL: s.publicBaseURL + "/api/payments/notifications",
	})
	if err != nil {
		return "", fmt.Errorf("failed to initialize payment: %w", err)
	}

	booking.PaymentStatus = models.PaymentStatusInitiated
	booking.PaymentID = &paymentResp.PaymentID
	booking.OrderID = &orderID

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return "", fmt.Errorf("failed to update booking: %w", err)
	}

	event := models.PaymentInitiatedEvent{
		BookingID:   booking.ID,
		TotalAmount: booking.TotalAmount,
		PaymentID:   paymentResp.PaymentID,
		Timestamp:   time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentInitiated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment initiated event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", "payment.initiated")
	}

	return paymentResp.PaymentURL, nil
}

func (s *BookingService) Cancel(ctx context.Context, req *models.CancelBookingRequest) error {
	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %d: %w", req.BookingID, apperrors.ErrNotFound)
	}

	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusExpired {
		return nil
	}

	if err := s.bookingRepo.ReleaseSeats(ctx, booking.ID); err != nil {
		logger.WithContext(ctx).Error("Failed to release seats during booking cancellation",
			"error", err,
			"booking_id", booking.ID)
	}

	if booking.PaymentID != nil && booking.PaymentStatus == models.PaymentStatusInitiated {
		if err := s.paymentClient.CancelPayment(ctx, *booking.PaymentID, "Booking cancelled by user"); err != nil {
			logger.WithContext(ctx).Error("Failed to cancel payment during booking cancellation",
				"error", err,
				"payment_id", *booking.PaymentID)
		}
	}

	booking.Status = models.BookingStatusCancelled
	booking.PaymentStatus = models.PaymentStatusCancelled

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	event := models.BookingCancelledEvent{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		Reason:     "User cancellation",
		Timestamp:  time.Now(),
	}
	if err := s.natsClient.Publish(models.EventBookingCancelled, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", "booking.cancelled")
	}

	return nil
}

// HandlePaymentSuccess confirms the booking the gateway redirected back for
func (s *BookingService) HandlePaymentSuccess(ctx context.Context, orderID string) error {
	booking, err := s.getByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.confirmBooking(ctx, booking)
}

// HandlePaymentFail releases the seats of a failed payment
func (s *BookingService) HandlePaymentFail(ctx context.Context, orderID string) error {
	booking, err := s.getByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.failBooking(ctx, booking, "Payment failed")
}

// HandlePaymentNotification applies a gateway webhook to the booking it
// references. Unknown statuses are logged and acknowledged so the gateway
// does not retry forever.
func (s *BookingService) HandlePaymentNotification(ctx context.Context, notification *models.PaymentNotificationPayload) error {
	booking, err := s.getByOrder(ctx, notification.OrderID)
	if err != nil {
		return err
	}

	switch notification.Status {
	case "completed", "CONFIRMED", "AUTHORIZED":
		return s.confirmBooking(ctx, booking)
	case "failed", "REJECTED", "CANCELLED", "EXPIRED":
		return s.failBooking(ctx, booking, notification.Status)
	default:
		logger.WithContext(ctx).Warn("Ignoring payment notification with unknown status",
			"payment_id", notification.PaymentID,
			"order_id", notification.OrderID,
			"status", notification.Status)
		return nil
	}
}

func (s *BookingService) getByOrder(ctx context.Context, orderID string) (*models.Booking, error) {
	if orderID == "" {
		return nil, fmt.Errorf("missing order id: %w", apperrors.ErrNotFound)
	}

	booking, err := s.bookingRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by order: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}

	return booking, nil
}

func (s *BookingService) confirmBooking(ctx context.Context, booking *models.Booking) error {
	if booking.Status == models.BookingStatusConfirmed {
		return nil
	}

	booking.Status = models.BookingStatusConfirmed
	booking.PaymentStatus = models.PaymentStatusCompleted

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	event := models.PaymentCompletedEvent{
		BookingID: booking.ID,
		PaymentID: deref(booking.PaymentID),
		OrderID:   deref(booking.OrderID),
		Timestamp: time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentCompleted, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment completed event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", "payment.completed")
	}

	return nil
}

func (s *BookingService) failBooking(ctx context.Context, booking *models.Booking, reason string) error {
	if booking.Status == models.BookingStatusCancelled {
		return nil
	}

	if err := s.bookingRepo.ReleaseSeats(ctx, booking.ID); err != nil {
		logger.WithContext(ctx).Error("Failed to release seats after failed payment",
			"error", err,
			"booking_id", booking.ID)
	}

	booking.Status = models.BookingStatusCancelled
	booking.PaymentStatus = models.PaymentStatusFailed

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	event := models.PaymentFailedEvent{
		BookingID: booking.ID,
		PaymentID: deref(booking.PaymentID),
		OrderID:   deref(booking.OrderID),
		Reason:    reason,
		Timestamp: time.Now(),
	}
	if err := s.natsClient.Publish(models.EventPaymentFailed, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment failed event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", "payment.failed")
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
