package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// LocalsPrincipal is the Fiber locals key holding the verified Principal.
const LocalsPrincipal = "auth.principal"

type ctxKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal attached by the authentication middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok && p.IdentityID != ""
}

// Attach stores p on both the Fiber locals and the request's user context.
func Attach(c *fiber.Ctx, p Principal) {
	c.Locals(LocalsPrincipal, p)
	c.SetUserContext(WithPrincipal(c.UserContext(), p))
}

// CurrentPrincipal returns the principal of an authenticated request.
func CurrentPrincipal(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(LocalsPrincipal).(Principal)
	return p, ok && p.IdentityID != ""
}

// IdentityID returns the authenticated identity id, or "" when absent.
func IdentityID(c *fiber.Ctx) string {
	p, _ := CurrentPrincipal(c)
	return p.IdentityID
}
