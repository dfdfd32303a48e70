package server

import (
    "context"
    "log/slog"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/deepakjoshi9239/finance-tracker/internal/apperror"
    "github.com/deepakjoshi9239/finance-tracker/internal/config"
    "github.com/deepakjoshi9239/finance-tracker/internal/routes"
)

// Server owns the finance tracker's Fiber app together with the stores it was built on.
type Server struct {
    app   *fiber.App
    cfg   config.Config
    db    *pgxpool.Pool
    cache *redis.Client
}

// New builds the app with the JSON error handler and mounts the API through
// routes.Setup. db and cache may be nil in development, in which case the
// in-memory stores serve requests.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) (*Server, error) {
    app := fiber.New(fiber.Config{
        AppName:      cfg.AppName,
        ReadTimeout:  30 * time.Second,
        WriteTimeout: 30 * time.Second,
        ErrorHandler: apperror.Handler(logger, cfg.IsDevelopment()),
    })

    if err := routes.Setup(app, routes.Deps{Cfg: cfg, DB: db, Cache: cache, Logger: logger}); err != nil {
        return nil, err
    }

    return &Server{app: app, cfg: cfg, db: db, cache: cache}, nil
}

// App exposes the underlying Fiber application, mainly for app.Test.
func (s *Server) App() *fiber.App {
    return s.app
}

// Listen serves the API on the configured host and port until Shutdown.
func (s *Server) Listen() error {
    return s.app.Listen(s.cfg.Address())
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
    return s.app.ShutdownWithContext(ctx)
}
