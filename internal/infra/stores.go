package infra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Stores holds the optional backing services. A nil field means the
// corresponding URL was not configured.
type Stores struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

// Open connects to whichever of Postgres and Redis has a URL, and migrates
// Postgres. On error anything already opened is closed.
func Open(ctx context.Context, databaseURL, redisURL, appName string) (*Stores, error) {
	s := &Stores{}
	if databaseURL != "" {
		db, err := NewPostgresPool(ctx, databaseURL, appName)
		if err != nil {
			return nil, err
		}
		s.DB = db
		if err := Migrate(ctx, db); err != nil {
			s.Close(nil)
			return nil, err
		}
	}
	if redisURL != "" {
		cache, err := NewRedisClient(ctx, redisURL)
		if err != nil {
			s.Close(nil)
			return nil, err
		}
		s.Cache = cache
	}
	return s, nil
}

// Close releases the open stores. logger may be nil.
func (s *Stores) Close(logger *slog.Logger) {
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil && logger != nil {
			logger.Warn("close redis", "error", err)
		}
	}
	if s.DB != nil {
		s.DB.Close()
	}
}

// NewPostgresPool configures and returns a PostgreSQL connection pool tagged
// with appName.
func NewPostgresPool(ctx context.Context, url, appName string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, errors.New("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if appName != "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = appName
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// NewRedisClient configures a Redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
