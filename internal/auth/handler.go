package auth

import (
    "errors"
    "log/slog"
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/deepakjoshi9239/finance-tracker/internal/apperror"
    "github.com/deepakjoshi9239/finance-tracker/internal/identity"
    "github.com/deepakjoshi9239/finance-tracker/internal/notification"
    "github.com/deepakjoshi9239/finance-tracker/internal/validation"
)

const (
    msgUserNotFound       = "User not found"
    msgInvalidCredentials = "Invalid credentials"
)

// Handler exposes auth endpoints for login/logout/me.
type Handler struct {
    svc      *Service
    notifier notification.Notifier
    logger   *slog.Logger
    // unify reports unknown emails as invalid credentials.
    unify bool
}

func NewHandler(svc *Service, notifier notification.Notifier, logger *slog.Logger, unifyLoginErrors bool) *Handler {
    return &Handler{svc: svc, notifier: notifier, logger: logger, unify: unifyLoginErrors}
}

type loginRequest struct {
    Email    string `json:"email" validate:"required"`
    Password string `json:"password" validate:"required"`
}

type loginResponse struct {
    Token string `json:"token"`
}

// Login validates credentials and returns a signed token.
func (h *Handler) Login(c *fiber.Ctx) error {
    var req loginRequest
    if err := c.BodyParser(&req); err != nil {
        return apperror.Validation("invalid request body")
    }
    if err := validation.Struct(req); err != nil {
        return err
    }

    token, err := h.svc.Login(c.UserContext(), identity.Credentials{Email: req.Email, Password: req.Password})
    switch {
    case err == nil:
    case errors.Is(err, identity.ErrUserNotFound):
        if h.unify {
            return apperror.Authentication(msgInvalidCredentials)
        }
        return apperror.NotFound(msgUserNotFound)
    case errors.Is(err, identity.ErrInvalidCredentials):
        return apperror.Authentication(msgInvalidCredentials)
    default:
        return apperror.Unexpected("Server error", err)
    }

    return c.Status(http.StatusOK).JSON(loginResponse{Token: token.Value})
}

// Logout revokes the bearer token used for this request.
func (h *Handler) Logout(c *fiber.Ctx) error {
    p, ok := CurrentPrincipal(c)
    if !ok {
        return apperror.Authentication("Authentication token is required")
    }
    if err := h.svc.Logout(c.UserContext(), p); err != nil {
        return apperror.Unexpected("Error logging out", err)
    }
    if h.notifier != nil {
        if err := h.notifier.Send(c.UserContext(), notification.Message{
            Kind:        notification.KindLoggedOut,
            Destination: p.IdentityID,
            Body:        "token revoked",
        }); err != nil && h.logger != nil {
            h.logger.Warn("notify logout", slog.String("user_id", p.IdentityID), slog.Any("error", err))
        }
    }
    return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the authenticated identity.
func (h *Handler) Me(c *fiber.Ctx) error {
    p, ok := CurrentPrincipal(c)
    if !ok {
        return apperror.Authentication("Authentication token is required")
    }
    user, err := h.svc.Me(c.UserContext(), p)
    if err != nil {
        if errors.Is(err, identity.ErrUserNotFound) {
            return apperror.NotFound(msgUserNotFound)
        }
        return apperror.Unexpected("Error fetching user", err)
    }
    return c.Status(http.StatusOK).JSON(identity.ToResponse(user))
}
