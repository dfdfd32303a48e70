package middleware

import (
    "log/slog"

    "github.com/gofiber/fiber/v2"

    "github.com/deepakjoshi9239/finance-tracker/internal/apperror"
    "github.com/deepakjoshi9239/finance-tracker/internal/notification"
    "github.com/deepakjoshi9239/finance-tracker/internal/ratelimit"
)

const msgTooManyLogins = "Too many login attempts. Please try again later."

// LoginRateLimit limits login attempts per source address. Limiter failures
// let the request through.
func LoginRateLimit(limiter ratelimit.Limiter, notifier notification.Notifier, logger *slog.Logger) fiber.Handler {
    return func(c *fiber.Ctx) error {
        if limiter == nil {
            return c.Next()
        }
        ip := c.IP()
        allowed, err := limiter.Allow(c.UserContext(), ip)
        if err != nil {
            if logger != nil {
                logger.Warn("login rate limiter unavailable", slog.String("ip", ip), slog.Any("error", err))
            }
            return c.Next() // fail-open on limiter errors
        }
        if !allowed {
            if notifier != nil {
                _ = notifier.Send(c.UserContext(), notification.Message{
                    Kind:        notification.KindLoginThrottled,
                    Destination: ip,
                    Body:        "login attempts exceeded",
                })
            }
            return apperror.Throttled(msgTooManyLogins)
        }
        return c.Next()
    }
}
