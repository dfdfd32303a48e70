package routes

import (
    "fmt"
    "io"
    "log/slog"
    "net/http"
    "os"
    "strings"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/cors"
    "github.com/gofiber/fiber/v2/middleware/logger"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/deepakjoshi9239/finance-tracker/internal/auth"
    "github.com/deepakjoshi9239/finance-tracker/internal/budget"
    "github.com/deepakjoshi9239/finance-tracker/internal/config"
    "github.com/deepakjoshi9239/finance-tracker/internal/expense"
    "github.com/deepakjoshi9239/finance-tracker/internal/identity"
    "github.com/deepakjoshi9239/finance-tracker/internal/middleware"
    "github.com/deepakjoshi9239/finance-tracker/internal/notification"
    "github.com/deepakjoshi9239/finance-tracker/internal/ratelimit"
    "github.com/deepakjoshi9239/finance-tracker/internal/savings"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// may be nil in development, in which case in-memory stores are used.
type Deps struct {
    Cfg    config.Config
    DB     *pgxpool.Pool
    Cache  *redis.Client
    Logger *slog.Logger
    // Notifier defaults to a logger-backed notifier.
    Notifier notification.Notifier
    // AccessLog receives the plain text access log. Defaults to stdout.
    AccessLog io.Writer
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
    // Enforce DB/Redis presence outside of dev, even though config also checks.
    if !d.Cfg.IsDevelopment() {
        if d.DB == nil {
            return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
        if d.Cache == nil {
            return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
    }
    secret, err := auth.NewSecret(d.Cfg.JWTSecret)
    if err != nil {
        return err
    }
    if d.Logger == nil {
        d.Logger = slog.Default()
    }
    if d.Notifier == nil {
        d.Notifier = notification.NewLoggerNotifier(d.Logger)
    }
    if d.AccessLog == nil {
        d.AccessLog = os.Stdout
    }

    // Middlewares
    app.Use(recover.New())
    app.Use(middleware.RequestID())
    app.Use(cors.New(cors.Config{
        AllowOrigins: d.Cfg.CORSOrigins,
        AllowHeaders: strings.Join([]string{
            fiber.HeaderOrigin,
            fiber.HeaderContentType,
            fiber.HeaderAccept,
            fiber.HeaderAuthorization,
            "Idempotency-Key",
        }, ", "),
    }))
    // Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
    app.Use(logger.New(logger.Config{
        Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
        TimeFormat: "15:04:05",
        TimeZone:   "Local",
        Output:     d.AccessLog,
    }))
    app.Use(middleware.Audit(d.Logger))

    // Health
    RegisterHealthRoutes(app, d)

    // Stores
    var (
        identityRepo identity.Repository
        budgetRepo   budget.Repository
        expenseRepo  expense.Repository
        savingsRepo  savings.Repository
    )
    if d.DB != nil {
        identityRepo = identity.NewPostgresRepository(d.DB)
        budgetRepo = budget.NewPostgresRepository(d.DB)
        expenseRepo = expense.NewPostgresRepository(d.DB)
        savingsRepo = savings.NewPostgresRepository(d.DB)
    } else {
        d.Logger.Warn("DATABASE_URL not set, using in-memory repositories")
        identityRepo = identity.NewMemoryRepository()
        budgetRepo = budget.NewMemoryRepository()
        expenseRepo = expense.NewMemoryRepository()
        savingsRepo = savings.NewMemoryRepository()
    }

    var (
        limiter  ratelimit.Limiter
        denylist auth.Denylist
    )
    if d.Cache != nil {
        limiter = ratelimit.NewRedisLimiter(d.Cache, d.Cfg.LoginMaxAttempts, d.Cfg.LoginWindow)
        denylist = auth.NewRedisDenylist(d.Cache)
    } else {
        d.Logger.Warn("REDIS_URL not set, using in-process rate limiter and token denylist")
        limiter = ratelimit.NewMemoryLimiter(d.Cfg.LoginMaxAttempts, d.Cfg.LoginWindow)
        denylist = auth.NewMemoryDenylist()
    }

    // Services and handlers
    identitySvc := identity.NewService(identityRepo, d.Cfg.BcryptCost)
    tokens := auth.NewTokenService(secret, d.Cfg.TokenTTL)
    authSvc := auth.NewService(identitySvc, tokens, denylist)

    identityHandler := identity.NewHandler(identitySvc, d.Notifier, d.Logger)
    authHandler := auth.NewHandler(authSvc, d.Notifier, d.Logger, d.Cfg.UnifyLoginErrors)
    budgetHandler := budget.NewHandler(budget.NewService(budgetRepo))
    expenseHandler := expense.NewHandler(expense.NewService(expenseRepo))
    savingsHandler := savings.NewHandler(savings.NewService(savingsRepo))

    // API routes
    api := app.Group("/api")
    api.Get("/ping", func(c *fiber.Ctx) error {
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "status":     "ok",
            "request_id": middleware.RequestIDFrom(c),
            "timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
        })
    })

    authn := middleware.Authenticate(authSvc)
    idempotent := middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)

    RegisterAuthRoutes(api, identityHandler, authHandler, middleware.LoginRateLimit(limiter, d.Notifier, d.Logger), authn)
    RegisterResourceRoutes(api, "/budget", budgetHandler, authn, idempotent)
    RegisterResourceRoutes(api, "/expenses", expenseHandler, authn, idempotent)
    RegisterResourceRoutes(api, "/savings-goals", savingsHandler, authn, idempotent)

    return nil
}
