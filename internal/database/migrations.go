package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createMoviesTable,
		createTheatersTable,
		createShowtimesTable,
		createBookingsTable,
		createBookingSeatsTable,
		createMovieIndexes,
		createShowtimeIndexes,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    first_name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW(),
    last_logged_in TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createMoviesTable = `
CREATE TABLE IF NOT EXISTS movies (
    id SERIAL PRIMARY KEY,
    tmdb_id BIGINT UNIQUE,
    title VARCHAR(500) NOT NULL,
    genre VARCHAR(100) NOT NULL DEFAULT '',
    language VARCHAR(50) NOT NULL DEFAULT '',
    rating REAL NOT NULL DEFAULT 0,
    release_date DATE,
    runtime_min INTEGER NOT NULL DEFAULT 0,
    overview TEXT NOT NULL DEFAULT '',
    poster_url TEXT NOT NULL DEFAULT '',
    showtimes JSONB NOT NULL DEFAULT '[]',
    search_vector tsvector GENERATED ALWAYS AS
        (to_tsvector('english', coalesce(title, '') || ' ' || coalesce(overview, ''))) STORED,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTheatersTable = `
CREATE TABLE IF NOT EXISTS theaters (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) UNIQUE NOT NULL,
    location VARCHAR(255) NOT NULL,
    screens JSONB NOT NULL DEFAULT '[]',
    showtimes JSONB NOT NULL DEFAULT '[]',
    movie_titles TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createShowtimesTable = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
CREATE TABLE IF NOT EXISTS showtimes (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    movie_id INTEGER NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
    movie_title VARCHAR(500) NOT NULL,
    theater_id INTEGER NOT NULL REFERENCES theaters(id) ON DELETE CASCADE,
    theater_name VARCHAR(255) NOT NULL,
    screen_name VARCHAR(100) NOT NULL,
    starts_at TIMESTAMP NOT NULL,
    price BIGINT NOT NULL,
    seat_rows INTEGER NOT NULL,
    seats_per_row INTEGER NOT NULL,

    UNIQUE(theater_id, screen_name, starts_at)
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id SERIAL PRIMARY KEY,
    user_id INTEGER REFERENCES users(user_id),
    showtime_id UUID NOT NULL REFERENCES showtimes(id) ON DELETE CASCADE,
    movie_title VARCHAR(500) NOT NULL DEFAULT '',
    theater_name VARCHAR(255) NOT NULL DEFAULT '',
    seats_count INTEGER NOT NULL DEFAULT 0,
    total_amount BIGINT NOT NULL DEFAULT 0,
    status VARCHAR(20) NOT NULL DEFAULT 'CREATED',
    payment_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
    payment_id VARCHAR(255),
    order_id VARCHAR(255),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('CREATED', 'CONFIRMED', 'CANCELLED', 'EXPIRED')),
    CHECK (payment_status IN ('PENDING', 'INITIATED', 'COMPLETED', 'FAILED', 'CANCELLED'))
);`

const createBookingSeatsTable = `
CREATE TABLE IF NOT EXISTS booking_seats (
    id SERIAL PRIMARY KEY,
    booking_id INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    showtime_id UUID NOT NULL REFERENCES showtimes(id) ON DELETE CASCADE,
    seat_code VARCHAR(10) NOT NULL,
    price BIGINT NOT NULL DEFAULT 0,
    reserved_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(showtime_id, seat_code)
);`

const createMovieIndexes = `
CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies(genre);
CREATE INDEX IF NOT EXISTS idx_movies_language ON movies(language);
CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date);
CREATE INDEX IF NOT EXISTS idx_movies_search ON movies USING GIN(search_vector);`

const createShowtimeIndexes = `
CREATE INDEX IF NOT EXISTS idx_showtimes_movie ON showtimes(movie_id);
CREATE INDEX IF NOT EXISTS idx_showtimes_theater ON showtimes(theater_id);
CREATE INDEX IF NOT EXISTS idx_showtimes_starts_at ON showtimes(starts_at);`
