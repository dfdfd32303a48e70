package routes

import (
    "github.com/gofiber/fiber/v2"
)

// crudHandler is the shape shared by every owned-resource handler.
type crudHandler interface {
    Create(c *fiber.Ctx) error
    List(c *fiber.Ctx) error
    Get(c *fiber.Ctx) error
    Update(c *fiber.Ctx) error
    Delete(c *fiber.Ctx) error
}

// RegisterResourceRoutes mounts the five owned-resource operations under
// prefix. guards run before every route, in order.
func RegisterResourceRoutes(r fiber.Router, prefix string, h crudHandler, guards ...fiber.Handler) {
    group := r.Group(prefix, guards...)
    group.Post("/", h.Create)
    group.Get("/", h.List)
    group.Get("/:id", h.Get)
    group.Put("/:id", h.Update)
    group.Delete("/:id", h.Delete)
}
