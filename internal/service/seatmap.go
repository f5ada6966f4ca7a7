package service

import (
	"fmt"

	"kinoplex/internal/models"
)

const maxSeatRows = 26 // rows are lettered A through Z

// BuildSeatMap generates the seat map of a showtime from the screen
// dimensions. Seat maps are never stored; a seat is booked exactly when a
// reservation row exists for its code.
func BuildSeatMap(showtime *models.Showtime, bookedCodes []string) models.SeatMapResponse {
	booked := make(map[string]bool, len(bookedCodes))
	for _, code := range bookedCodes {
		booked[code] = true
	}

	rowCount := showtime.SeatRows
	if rowCount > maxSeatRows {
		rowCount = maxSeatRows
	}

	rows := make([]models.SeatMapRow, 0, rowCount)
	for r := 0; r < rowCount; r++ {
		rowLabel := rowLetter(r)
		seats := make([]models.SeatMapSeat, 0, showtime.SeatsPerRow)
		for n := 1; n <= showtime.SeatsPerRow; n++ {
			code := fmt.Sprintf("%s%d", rowLabel, n)
			status := "available"
			if booked[code] {
				status = "booked"
			}
			seats = append(seats, models.SeatMapSeat{Code: code, Status: status})
		}
		rows = append(rows, models.SeatMapRow{Row: rowLabel, Seats: seats})
	}

	return models.SeatMapResponse{
		ShowtimeID: showtime.ID,
		Price:      showtime.Price,
		Rows:       rows,
	}
}

// ValidSeatCode reports whether a seat code exists in the screen layout of
// the given showtime.
func ValidSeatCode(showtime *models.Showtime, code string) bool {
	if len(code) < 2 {
		return false
	}

	row := int(code[0] - 'A')
	rowCount := showtime.SeatRows
	if rowCount > maxSeatRows {
		rowCount = maxSeatRows
	}
	if row < 0 || row >= rowCount {
		return false
	}

	var number int
	if _, err := fmt.Sscanf(code[1:], "%d", &number); err != nil {
		return false
	}
	if fmt.Sprintf("%s%d", code[:1], number) != code {
		return false
	}

	return number >= 1 && number <= showtime.SeatsPerRow
}

func rowLetter(i int) string {
	return string(rune('A' + i))
}
