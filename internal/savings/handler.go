package savings

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
	"github.com/deepakjoshi9239/finance-tracker/internal/validation"
)

const resourceName = "Goal"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name   string   `json:"name" validate:"required"`
	Amount *float64 `json:"amount" validate:"required,gt=0"`
}

type updateRequest struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount"`
}

type goalResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(g Goal) goalResponse {
	return goalResponse{
		ID:        g.ID,
		UserID:    g.UserID,
		Name:      g.Name,
		Amount:    g.Amount,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validation.First(validation.Struct(req), validation.OptionalText("name", &req.Name)); err != nil {
		return err
	}

	g, err := h.service.Create(c.UserContext(), auth.IdentityID(c), req.Name, *req.Amount)
	if err != nil {
		return apperror.Unexpected("Error saving goal", err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(g))
}

func (h *Handler) List(c *fiber.Ctx) error {
	goals, err := h.service.List(c.UserContext(), auth.IdentityID(c))
	if err != nil {
		return apperror.Unexpected("Error fetching savings goals", err)
	}
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toResponse(g))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	g, err := h.service.Get(c.UserContext(), c.Params("id"), auth.IdentityID(c))
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error fetching goal")
	}
	return c.Status(http.StatusOK).JSON(toResponse(g))
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validation.First(
		validation.OptionalText("name", req.Name),
		validation.OptionalPositive("amount", req.Amount),
	); err != nil {
		return err
	}

	g, err := h.service.Update(c.UserContext(), c.Params("id"), auth.IdentityID(c), UpdateInput{Name: req.Name, Amount: req.Amount})
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error updating goal")
	}
	return c.Status(http.StatusOK).JSON(toResponse(g))
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id, auth.IdentityID(c)); err != nil {
		return ownership.AsAppError(err, resourceName, "Error deleting goal")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Goal deleted", "id": id})
}
