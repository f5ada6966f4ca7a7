package service

import (
	"testing"

	"kinoplex/internal/models"

	"github.com/stretchr/testify/assert"
)

func testShowtime(rows, perRow int) *models.Showtime {
	return &models.Showtime{
		ID:          "0b54f327-3791-4d1c-a231-8104bbd0ee8b",
		Price:       180000,
		SeatRows:    rows,
		SeatsPerRow: perRow,
	}
}

func TestBuildSeatMap(t *testing.T) {
	seatMap := BuildSeatMap(testShowtime(3, 4), []string{"A2", "C4"})

	assert.Equal(t, "0b54f327-3791-4d1c-a231-8104bbd0ee8b", seatMap.ShowtimeID)
	assert.Equal(t, int64(180000), seatMap.Price)
	assert.Len(t, seatMap.Rows, 3)

	assert.Equal(t, "A", seatMap.Rows[0].Row)
	assert.Equal(t, "B", seatMap.Rows[1].Row)
	assert.Equal(t, "C", seatMap.Rows[2].Row)

	for _, row := range seatMap.Rows {
		assert.Len(t, row.Seats, 4)
	}

	assert.Equal(t, "A1", seatMap.Rows[0].Seats[0].Code)
	assert.Equal(t, "available", seatMap.Rows[0].Seats[0].Status)
	assert.Equal(t, "booked", seatMap.Rows[0].Seats[1].Status)
	assert.Equal(t, "booked", seatMap.Rows[2].Seats[3].Status)
}

func TestBuildSeatMapNoBookings(t *testing.T) {
	seatMap := BuildSeatMap(testShowtime(2, 2), nil)

	for _, row := range seatMap.Rows {
		for _, seat := range row.Seats {
			assert.Equal(t, "available", seat.Status)
		}
	}
}

func TestBuildSeatMapRowCap(t *testing.T) {
	seatMap := BuildSeatMap(testShowtime(30, 2), nil)

	assert.Len(t, seatMap.Rows, 26)
	assert.Equal(t, "Z", seatMap.Rows[25].Row)
}

func TestValidSeatCode(t *testing.T) {
	showtime := testShowtime(5, 10)

	valid := []string{"A1", "A10", "E10", "C5"}
	for _, code := range valid {
		assert.True(t, ValidSeatCode(showtime, code), "expected %s to be valid", code)
	}

	invalid := []string{"", "A", "A0", "A11", "F1", "Z1", "a1", "1A", "A01", "A1x"}
	for _, code := range invalid {
		assert.False(t, ValidSeatCode(showtime, code), "expected %s to be invalid", code)
	}
}

func TestValidSeatCodeRespectsRowCap(t *testing.T) {
	showtime := testShowtime(30, 4)

	assert.True(t, ValidSeatCode(showtime, "Z4"))
	assert.False(t, ValidSeatCode(showtime, "[1"))
}
