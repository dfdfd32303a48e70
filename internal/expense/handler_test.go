package expense

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
	"github.com/deepakjoshi9239/finance-tracker/internal/logging"
)

const userHeader = "X-Test-User"

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler(logging.Discard(), false)})
	app.Use(func(c *fiber.Ctx) error {
		auth.Attach(c, auth.Principal{IdentityID: c.Get(userHeader)})
		return c.Next()
	})
	h := NewHandler(NewService(NewMemoryRepository()))
	app.Post("/expenses", h.Create)
	app.Get("/expenses", h.List)
	app.Get("/expenses/:id", h.Get)
	app.Put("/expenses/:id", h.Update)
	app.Delete("/expenses/:id", h.Delete)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, user, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(userHeader, user)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, payload
}

func TestHandlerValidation(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		body    string
		message string
	}{
		{`{"category":"food","description":"lunch"}`, "amount is required"},
		{`{"amount":0,"category":"food","description":"lunch"}`, "amount must be at least 0.01"},
		{`{"amount":5,"description":"lunch"}`, "category is required"},
		{`{"amount":5,"category":"food"}`, "description is required"},
		{`{"amount":5,"category":"food","description":"lunch","date":"yesterday"}`, "date must be a valid date"},
	}
	for _, tc := range cases {
		status, body := do(t, app, fiber.MethodPost, "/expenses", "alice", tc.body)
		assert.Equal(t, fiber.StatusBadRequest, status, tc.body)
		var decoded map[string]string
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, tc.message, decoded["message"])
	}
}

func TestHandlerCrudFlow(t *testing.T) {
	app := newTestApp()

	status, body := do(t, app, fiber.MethodPost, "/expenses", "alice", `{"amount":12.5,"category":"food","description":"lunch","date":"2024-02-10"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created expenseResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, 10, created.Date.Day())

	status, _ = do(t, app, fiber.MethodDelete, "/expenses/"+created.ID, "bob", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = do(t, app, fiber.MethodPut, "/expenses/"+created.ID, "alice", `{"amount":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "amount must be at least 0.01")

	status, body = do(t, app, fiber.MethodPut, "/expenses/"+created.ID, "alice", `{"description":"team lunch"}`)
	require.Equal(t, fiber.StatusOK, status)
	var updated expenseResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "team lunch", updated.Description)
	assert.Equal(t, 12.5, updated.Amount)

	status, body = do(t, app, fiber.MethodGet, "/expenses", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	var list []expenseResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	status, body = do(t, app, fiber.MethodDelete, "/expenses/"+created.ID, "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "Expense deleted successfully")

	status, body = do(t, app, fiber.MethodGet, "/expenses/"+created.ID, "alice", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Expense not found"}`, string(body))
}
