package config

import (
	"os"
	"strconv"
	"time"

	"kinoplex/internal/database"
	"kinoplex/internal/external"
	"kinoplex/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// PublicBaseURL is what the payment gateway redirects back to
	PublicBaseURL string

	// Elasticsearch-backed movie search is optional; with it off the
	// Postgres full-text fallback serves /api/movies.
	SearchEnabled bool

	Database database.Config
	NATS     messaging.Config
	TMDB     external.TMDBConfig
	Payment  external.PaymentConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		SearchEnabled: getEnv("SEARCH_ENABLED", "false") == "true",

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "kinoplex"),
			Password:           getEnv("DB_PASSWORD", "kinoplex123"),
			DBName:             getEnv("DB_NAME", "kinoplex"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "kinoplex"),
			ClientID:  getEnv("NATS_CLIENT_ID", "kinoplex-api"),
		},

		TMDB: external.TMDBConfig{
			BaseURL:    getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			APIKey:     getEnv("TMDB_API_KEY", ""),
			ImageBase:  getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p/w500"),
			Timeout:    time.Duration(getEnvInt("TMDB_TIMEOUT_SEC", 15)) * time.Second,
			MaxRetries: getEnvInt("TMDB_MAX_RETRIES", 3),
		},

		Payment: external.PaymentConfig{
			BaseURL:  getEnv("PAYMENT_GATEWAY_URL", "http://localhost:9090"),
			TeamSlug: getEnv("PAYMENT_TEAM_SLUG", "kinoplex"),
			Password: getEnv("PAYMENT_PASSWORD", ""),
			Timeout:  time.Duration(getEnvInt("PAYMENT_TIMEOUT_SEC", 30)) * time.Second,
		},
	}
}

// getEnv returns the value of an environment variable or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
