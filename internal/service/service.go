package service

import (
	"kinoplex/internal/external"
	"kinoplex/internal/messaging"
	"kinoplex/internal/repository"
	"kinoplex/internal/search"
)

type Services struct {
	Movies    *MovieService
	Theaters  *TheaterService
	Showtimes *ShowtimeService
	Bookings  *BookingService
	Admin     *AdminService
	Reset     *ResetService
}

func NewServices(repos *repository.Repositories, esClient *search.ElasticsearchClient, natsClient *messaging.NATSClient, paymentClient *external.PaymentClient, publicBaseURL string) *Services {
	return &Services{
		Movies:    NewMovieService(repos.Movies, esClient, natsClient),
		Theaters:  NewTheaterService(repos.Theaters),
		Showtimes: NewShowtimeService(repos.Showtimes, repos.Movies, repos.Theaters),
		Bookings:  NewBookingService(repos.Bookings, repos.Showtimes, paymentClient, natsClient, publicBaseURL),
		Admin:     NewAdminService(repos.Users, repos.Movies, repos.Theaters, repos.Bookings),
		Reset:     NewResetService(repos.Bookings),
	}
}
