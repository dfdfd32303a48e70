package identity

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/notification"
	"github.com/deepakjoshi9239/finance-tracker/internal/validation"
)

// Handler exposes identity endpoints.
type Handler struct {
	service  *Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service, notifier notification.Notifier, logger *slog.Logger) *Handler {
	return &Handler{service: service, notifier: notifier, logger: logger}
}

type registerRequest struct {
	Name               string `json:"name" validate:"required,min=3,max=30"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6"`
	FinancialCondition string `json:"financialCondition"`
}

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	FinancialCondition string    `json:"financialCondition,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToResponse strips the password hash from user.
func ToResponse(user User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		FinancialCondition: user.FinancialCondition,
		CreatedAt:          user.CreatedAt,
	}
}

// Register handles user onboarding.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := h.service.Register(c.UserContext(), Registration{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		FinancialCondition: req.FinancialCondition,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return apperror.InvalidField("email", "Email is already registered")
		case errors.Is(err, ErrPasswordTooLong):
			return apperror.InvalidField("password", "password must be at most 72 bytes long")
		}
		return apperror.Unexpected("Error registering user", err)
	}

	if h.notifier != nil {
		if err := h.notifier.Send(c.UserContext(), notification.Message{
			Kind:        notification.KindAccountRegistered,
			Destination: user.ID,
			Body:        "account created",
		}); err != nil && h.logger != nil {
			h.logger.Warn("notify registration", slog.String("user_id", user.ID), slog.Any("error", err))
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    ToResponse(user),
	})
}
