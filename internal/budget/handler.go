package budget

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
	"github.com/deepakjoshi9239/finance-tracker/internal/validation"
)

const resourceName = "Budget"

// Handler exposes budget HTTP endpoints. All routes sit behind Authenticate.
type Handler struct {
	service *Service
}

// NewHandler builds a budget HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Income         *float64 `json:"income" validate:"required,gt=0"`
	Rent           float64  `json:"rent" validate:"gte=0"`
	Food           float64  `json:"food" validate:"gte=0"`
	Entertainment  float64  `json:"entertainment" validate:"gte=0"`
	Utilities      float64  `json:"utilities" validate:"gte=0"`
	Transportation float64  `json:"transportation" validate:"gte=0"`
	Month          string   `json:"month" validate:"required"`
}

type updateRequest struct {
	Income         *float64 `json:"income"`
	Rent           *float64 `json:"rent"`
	Food           *float64 `json:"food"`
	Entertainment  *float64 `json:"entertainment"`
	Utilities      *float64 `json:"utilities"`
	Transportation *float64 `json:"transportation"`
	Month          *string  `json:"month"`
}

type budgetResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Income         float64   `json:"income"`
	Rent           float64   `json:"rent"`
	Food           float64   `json:"food"`
	Entertainment  float64   `json:"entertainment"`
	Utilities      float64   `json:"utilities"`
	Transportation float64   `json:"transportation"`
	Month          string    `json:"month"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toResponse(b Budget) budgetResponse {
	return budgetResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		Income:         b.Income,
		Rent:           b.Rent,
		Food:           b.Food,
		Entertainment:  b.Entertainment,
		Utilities:      b.Utilities,
		Transportation: b.Transportation,
		Month:          b.Month,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// Create stores a budget for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validation.First(validation.Struct(req), validation.OptionalText("month", &req.Month)); err != nil {
		return err
	}

	b, err := h.service.Create(c.UserContext(), auth.IdentityID(c), CreateInput{
		Income:         *req.Income,
		Rent:           req.Rent,
		Food:           req.Food,
		Entertainment:  req.Entertainment,
		Utilities:      req.Utilities,
		Transportation: req.Transportation,
		Month:          req.Month,
	})
	if err != nil {
		return apperror.Unexpected("Error creating budget", err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(b))
}

// List returns the authenticated user's budgets, oldest first.
func (h *Handler) List(c *fiber.Ctx) error {
	budgets, err := h.service.List(c.UserContext(), auth.IdentityID(c))
	if err != nil {
		return apperror.Unexpected("Error fetching budgets", err)
	}
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toResponse(b))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Get returns a single budget owned by the caller.
func (h *Handler) Get(c *fiber.Ctx) error {
	b, err := h.service.Get(c.UserContext(), c.Params("id"), auth.IdentityID(c))
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error fetching budget")
	}
	return c.Status(http.StatusOK).JSON(toResponse(b))
}

// Update applies the provided fields to a budget owned by the caller.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	err := validation.First(
		validation.OptionalPositive("income", req.Income),
		validation.OptionalMin("rent", req.Rent, 0),
		validation.OptionalMin("food", req.Food, 0),
		validation.OptionalMin("entertainment", req.Entertainment, 0),
		validation.OptionalMin("utilities", req.Utilities, 0),
		validation.OptionalMin("transportation", req.Transportation, 0),
		validation.OptionalText("month", req.Month),
	)
	if err != nil {
		return err
	}

	b, err := h.service.Update(c.UserContext(), c.Params("id"), auth.IdentityID(c), UpdateInput{
		Income:         req.Income,
		Rent:           req.Rent,
		Food:           req.Food,
		Entertainment:  req.Entertainment,
		Utilities:      req.Utilities,
		Transportation: req.Transportation,
		Month:          req.Month,
	})
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error updating budget")
	}
	return c.Status(http.StatusOK).JSON(toResponse(b))
}

// Delete removes a budget owned by the caller.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id"), auth.IdentityID(c)); err != nil {
		return ownership.AsAppError(err, resourceName, "Error deleting budget")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Budget deleted successfully"})
}
