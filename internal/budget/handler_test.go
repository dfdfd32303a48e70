package budget

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
	app.Post("/budget", h.Create)
	app.Get("/budget", h.List)
	app.Get("/budget/:id", h.Get)
	app.Put("/budget/:id", h.Update)
	app.Delete("/budget/:id", h.Delete)
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

func TestHandlerCreateValidation(t *testing.T) {
	app := newTestApp()

	status, body := do(t, app, fiber.MethodPost, "/budget", "alice", `{"month":"2024-01"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "income is required")

	status, body = do(t, app, fiber.MethodPost, "/budget", "alice", `{"income":100,"month":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "month is required")
}

func TestHandlerOwnershipFlow(t *testing.T) {
	app := newTestApp()

	status, body := do(t, app, fiber.MethodPost, "/budget", "alice", `{"income":3000,"rent":1200,"month":"2024-01","userId":"bob"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created budgetResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "alice", created.UserID)

	status, body = do(t, app, fiber.MethodGet, "/budget/"+created.ID, "bob", "")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.JSONEq(t, `{"message":"Unauthorized access"}`, string(body))

	status, _ = do(t, app, fiber.MethodPut, "/budget/"+created.ID, "bob", `{"income":1}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = do(t, app, fiber.MethodDelete, "/budget/"+created.ID, "bob", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = do(t, app, fiber.MethodPut, "/budget/"+created.ID, "alice", `{"food":300,"userId":"bob"}`)
	require.Equal(t, fiber.StatusOK, status)
	var updated budgetResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "alice", updated.UserID)
	assert.Equal(t, 300.0, updated.Food)
	assert.Equal(t, 3000.0, updated.Income)

	status, body = do(t, app, fiber.MethodGet, "/budget", "bob", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = do(t, app, fiber.MethodDelete, "/budget/"+created.ID, "alice", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"Budget deleted successfully"}`, string(body))

	status, body = do(t, app, fiber.MethodGet, "/budget/"+created.ID, "alice", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Budget not found"}`, string(body))
}
