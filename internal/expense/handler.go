package expense

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
	"github.com/deepakjoshi9239/finance-tracker/internal/validation"
)

const (
	resourceName = "Expense"
	minAmount    = 0.01
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// Handler exposes expense HTTP endpoints. All routes sit behind Authenticate.
type Handler struct {
	service *Service
}

// NewHandler builds an expense HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Amount      *float64 `json:"amount" validate:"required,gte=0.01"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date"`
}

type updateRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

type expenseResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(e Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. Blank
// input yields the zero time.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Create records an expense for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	err := validation.First(
		validation.Struct(req),
		validation.OptionalText("category", &req.Category),
		validation.OptionalText("description", &req.Description),
	)
	if err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return apperror.InvalidField("date", "date must be a valid date")
	}

	e, err := h.service.Create(c.UserContext(), auth.IdentityID(c), CreateInput{
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return apperror.Unexpected("Server error", err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(e))
}

// List returns the authenticated user's expenses sorted by date, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	expenses, err := h.service.List(c.UserContext(), auth.IdentityID(c))
	if err != nil {
		return apperror.Unexpected("Error fetching expenses", err)
	}
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toResponse(e))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Get returns a single expense owned by the caller.
func (h *Handler) Get(c *fiber.Ctx) error {
	e, err := h.service.Get(c.UserContext(), c.Params("id"), auth.IdentityID(c))
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error fetching expense")
	}
	return c.Status(http.StatusOK).JSON(toResponse(e))
}

// Update validates only the fields present in the body.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	err := validation.First(
		validation.OptionalMin("amount", req.Amount, minAmount),
		validation.OptionalText("category", req.Category),
		validation.OptionalText("description", req.Description),
	)
	if err != nil {
		return err
	}

	in := UpdateInput{Amount: req.Amount, Category: req.Category, Description: req.Description}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return apperror.InvalidField("date", "date must be a valid date")
		}
		in.Date = &date
	}

	e, err := h.service.Update(c.UserContext(), c.Params("id"), auth.IdentityID(c), in)
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error updating expense")
	}
	return c.Status(http.StatusOK).JSON(toResponse(e))
}

// Delete removes an expense owned by the caller.
func (h *Handler) Delete(c *fiber.Ctx) error {
	e, err := h.service.Delete(c.UserContext(), c.Params("id"), auth.IdentityID(c))
	if err != nil {
		return ownership.AsAppError(err, resourceName, "Error deleting expense")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":        "Expense deleted successfully",
		"deletedExpense": toResponse(e),
	})
}
