package api

import (
	"fmt"
	"net/http"

	"kinoplex/internal/cache"
	"kinoplex/internal/config"
	"kinoplex/internal/database"
	"kinoplex/internal/external"
	"kinoplex/internal/handlers"
	"kinoplex/internal/logger"
	"kinoplex/internal/messaging"
	"kinoplex/internal/middleware"
	"kinoplex/internal/repository"
	"kinoplex/internal/search"
	"kinoplex/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP API together
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	// Search is optional; without it /api/movies is served by the
	// Postgres full-text path.
	var esClient *search.ElasticsearchClient
	if cfg.SearchEnabled {
		esClient, err = search.NewElasticsearchClient(config.LoadElasticsearchConfig())
		if err != nil {
			logger.Fatal("Failed to connect to Elasticsearch", "error", err)
		}
	}

	valkeyClient, err := cache.NewValkeyClient()
	if err != nil {
		logger.Get().Warn("Valkey unavailable, running without cache", "error", err)
		valkeyClient = nil
	}

	paymentClient := external.NewPaymentClient(cfg.Payment)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, esClient, natsClient, paymentClient, cfg.PublicBaseURL)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	api := s.router.Group("/api")
	{
		// Catalog browsing needs no authentication
		movies := api.Group("/movies")
		{
			movies.GET("", h.ListMovies)
			movies.GET("/:id", h.GetMovie)
		}

		theaters := api.Group("/theaters")
		{
			theaters.GET("", h.ListTheaters)
			theaters.GET("/:id", h.GetTheater)
		}

		api.GET("/showtimes/:id/seats", h.GetSeatMap)

		// The payment gateway calls back without credentials
		payments := api.Group("/payments")
		{
			payments.GET("/success", h.NotifyPaymentCompleted)
			payments.GET("/fail", h.NotifyPaymentFailed)
			payments.POST("/notifications", h.OnPaymentUpdates)
		}

		bookings := api.Group("/bookings")
		bookings.Use(middleware.BasicAuth(s.repos.Users, s.valkey))
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.GET("/:id", h.GetBooking)
			bookings.PATCH("/initiatePayment", h.InitiatePayment)
			bookings.PATCH("/cancel", h.CancelBooking)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.BasicAuth(s.repos.Users, s.valkey))
		admin.Use(middleware.AdminOnly(s.repos.Users))
		{
			admin.POST("/movies", h.AdminCreateMovie)
			admin.PUT("/movies/:id", h.AdminUpdateMovie)
			admin.DELETE("/movies/:id", h.AdminDeleteMovie)

			admin.POST("/theaters", h.AdminCreateTheater)
			admin.PUT("/theaters/:id", h.AdminUpdateTheater)
			admin.DELETE("/theaters/:id", h.AdminDeleteTheater)

			admin.POST("/showtimes", h.AdminCreateShowtime)

			admin.GET("/bookings", h.AdminListBookings)
			admin.PATCH("/bookings/:id/status", h.AdminUpdateBookingStatus)

			admin.GET("/analytics", h.AdminAnalytics)
			admin.POST("/reset", h.ResetDatabase)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "kinoplex-api",
		"database": dbHealth,
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the connections held by the server
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
