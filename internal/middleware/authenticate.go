package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
)

const (
	msgTokenRequired = "Authentication token is required"
	msgTokenInvalid  = "Invalid or expired token"
)

// TokenAuthenticator verifies a raw bearer token.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and attaches the
// verified principal to the request for downstream handlers.
func Authenticate(authenticator TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return apperror.Authentication(msgTokenRequired)
		}

		p, err := authenticator.Authenticate(c.UserContext(), token)
		if err != nil {
			var verr *auth.VerificationError
			if errors.As(err, &verr) || errors.Is(err, auth.ErrRevoked) {
				return apperror.Authentication(msgTokenInvalid)
			}
			return apperror.Unexpected("Error verifying token", err)
		}

		auth.Attach(c, p)
		return c.Next()
	}
}
