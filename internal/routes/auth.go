package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/deepakjoshi9239/finance-tracker/internal/auth"
    "github.com/deepakjoshi9239/finance-tracker/internal/identity"
)

// RegisterAuthRoutes mounts /auth. Only login is throttled; logout and me
// require a valid bearer token.
func RegisterAuthRoutes(r fiber.Router, ids *identity.Handler, h *auth.Handler, rateLimiter, authn fiber.Handler) {
    group := r.Group("/auth")
    group.Post("/register", ids.Register)
    if rateLimiter != nil {
        group.Post("/login", rateLimiter, h.Login)
    } else {
        group.Post("/login", h.Login)
    }
    group.Post("/logout", authn, h.Logout)
    group.Get("/me", authn, h.Me)
}
