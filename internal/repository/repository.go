package repository

import (
	"kinoplex/internal/database"
)

type Repositories struct {
	Movies    *MovieRepository
	Theaters  *TheaterRepository
	Showtimes *ShowtimeRepository
	Bookings  *BookingRepository
	Users     *UserRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Movies:    NewMovieRepository(db),
		Theaters:  NewTheaterRepository(db),
		Showtimes: NewShowtimeRepository(db),
		Bookings:  NewBookingRepository(db),
		Users:     NewUserRepository(db),
	}
}
