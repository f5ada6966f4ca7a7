package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const moviesListTTL = 60 * time.Second

type ValkeyClient struct {
	client       *redis.Client
	usersHashKey string
}

func NewValkeyClient() (*ValkeyClient, error) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	password := os.Getenv("VALKEY_PASSWORD")
	usersHashKey := os.Getenv("VALKEY_USERS_HASH_KEY")
	if usersHashKey == "" {
		usersHashKey = "users:auth"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:       rdb,
		usersHashKey: usersHashKey,
	}, nil
}

// GetUserIDByAuth looks up a user id by email and password hash in the auth
// hash, the fast path of Basic auth.
func (v *ValkeyClient) GetUserIDByAuth(ctx context.Context, email, passwordHash string) (int64, error) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	userIDStr, err := v.client.HGet(ctx, v.usersHashKey, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("user not found in cache")
		}
		return 0, fmt.Errorf("cache lookup error: %w", err)
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in cache: %w", err)
	}

	return userID, nil
}

// StoreUserAuth populates the auth hash after a successful database login.
func (v *ValkeyClient) StoreUserAuth(ctx context.Context, email, passwordHash string, userID int64) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	if err := v.client.HSet(ctx, v.usersHashKey, cacheKey, strconv.FormatInt(userID, 10)).Err(); err != nil {
		slog.Warn("Failed to store auth cache entry", "error", err)
	}
}

// moviesListKey includes a namespace version so a single INCR invalidates
// every cached page at once.
func (v *ValkeyClient) moviesListKey(ctx context.Context, page, pageSize int) string {
	version, err := v.client.Get(ctx, "movies:ver").Result()
	if err != nil {
		version = "0"
	}
	return fmt.Sprintf("movies:list:v%s:p%d:s%d", version, page, pageSize)
}

// GetMoviesListRaw returns the cached JSON of an unfiltered movie list page.
// Raw bytes are returned to skip the unmarshal/marshal round trip.
func (v *ValkeyClient) GetMoviesListRaw(ctx context.Context, page, pageSize int) ([]byte, error) {
	data, err := v.client.Get(ctx, v.moviesListKey(ctx, page, pageSize)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetMoviesList stores a movie list page. Failures are logged, never surfaced.
func (v *ValkeyClient) SetMoviesList(ctx context.Context, page, pageSize int, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to marshal movies list for cache", "error", err)
		return
	}

	if err := v.client.Set(ctx, v.moviesListKey(ctx, page, pageSize), payload, moviesListTTL).Err(); err != nil {
		slog.Warn("Failed to cache movies list", "error", err)
	}
}

// InvalidateMovies bumps the movies namespace version, orphaning every
// cached list page. Called after admin writes and seeder runs.
func (v *ValkeyClient) InvalidateMovies(ctx context.Context) {
	if err := v.client.Incr(ctx, "movies:ver").Err(); err != nil {
		slog.Warn("Failed to invalidate movies cache", "error", err)
	}
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
