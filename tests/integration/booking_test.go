package integration

import (
	"testing"
)

// TestBooking_FullFlow tests the complete booking lifecycle: pick free
// seats, book them, verify double booking is rejected, initiate payment
// and finally cancel so the seats are released again.
func TestBooking_FullFlow(t *testing.T) {
	client := newClientOrSkip(t)

	LogTestStep(t, "Looking for a showtime with at least 2 free seats")
	seatMap := FindShowtimeWithSeats(t, client, 2)
	if seatMap == nil {
		t.Skip("No showtimes with enough free seats found")
	}
	seats := FindAvailableSeats(seatMap, 2)

	LogTestStep(t, "Creating booking for seats %v on showtime %s", seats, seatMap.ShowtimeID)
	booking := client.CreateBooking(t, seatMap.ShowtimeID, seats)
	if booking.SeatsCount != 2 {
		t.Fatalf("Expected 2 seats in booking, got %d", booking.SeatsCount)
	}
	if booking.TotalAmount != 2*seatMap.Price {
		t.Fatalf("Expected total %d, got %d", 2*seatMap.Price, booking.TotalAmount)
	}
	if booking.Status != "CREATED" {
		t.Fatalf("Expected status CREATED, got %s", booking.Status)
	}

	LogTestStep(t, "Verifying the booked seats show up as booked")
	refreshed := client.GetSeatMap(t, seatMap.ShowtimeID)
	booked := map[string]bool{}
	for _, row := range refreshed.Rows {
		for _, seat := range row.Seats {
			if seat.Status == "booked" {
				booked[seat.Code] = true
			}
		}
	}
	for _, code := range seats {
		if !booked[code] {
			t.Fatalf("Seat %s not marked booked after booking", code)
		}
	}

	LogTestStep(t, "Attempting to double book the same seats")
	client.CreateBookingExpectingConflict(t, seatMap.ShowtimeID, seats[:1])

	LogTestStep(t, "Verifying the booking appears in the user's list")
	found := false
	for _, item := range client.ListBookings(t) {
		if item.ID == booking.ID {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Booking %d not found in bookings list", booking.ID)
	}

	detail := client.GetBooking(t, booking.ID)
	if len(detail.Seats) != 2 {
		t.Fatalf("Expected 2 seats in booking detail, got %d", len(detail.Seats))
	}

	LogTestStep(t, "Initiating payment for booking %d", booking.ID)
	paymentURL := client.InitiatePayment(t, booking.ID)
	if paymentURL == "" {
		t.Fatalf("Expected non-empty payment URL")
	}
	LogTestResult(t, "Payment URL generated: %s", paymentURL)

	LogTestStep(t, "Cancelling booking %d", booking.ID)
	client.CancelBooking(t, booking.ID)

	released := client.GetSeatMap(t, seatMap.ShowtimeID)
	for _, row := range released.Rows {
		for _, seat := range row.Seats {
			if seat.Code == seats[0] && seat.Status != "available" {
				t.Fatalf("Seat %s still %s after cancellation", seat.Code, seat.Status)
			}
		}
	}

	LogTestResult(t, "Booking lifecycle completed, seats released")
}

// TestBooking_CancelIsIdempotent tests that cancelling twice succeeds
func TestBooking_CancelIsIdempotent(t *testing.T) {
	client := newClientOrSkip(t)

	seatMap := FindShowtimeWithSeats(t, client, 1)
	if seatMap == nil {
		t.Skip("No showtimes with free seats found")
	}
	seats := FindAvailableSeats(seatMap, 1)

	booking := client.CreateBooking(t, seatMap.ShowtimeID, seats)

	LogTestStep(t, "Cancelling booking %d twice", booking.ID)
	client.CancelBooking(t, booking.ID)
	client.CancelBooking(t, booking.ID)

	LogTestResult(t, "Repeated cancellation accepted")
}
