package savings

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
	app.Post("/savings-goals", h.Create)
	app.Get("/savings-goals", h.List)
	app.Get("/savings-goals/:id", h.Get)
	app.Put("/savings-goals/:id", h.Update)
	app.Delete("/savings-goals/:id", h.Delete)
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

func message(t *testing.T, body []byte) string {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	msg, _ := decoded["message"].(string)
	return msg
}

func TestHandlerCreateValidation(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		body    string
		message string
	}{
		{`{"amount":100}`, "name is required"},
		{`{"name":"   ","amount":100}`, "name is required"},
		{`{"name":"Car"}`, "amount is required"},
		{`{"name":"Car","amount":0}`, "amount must be greater than 0"},
		{`{"name":"Car","amount":-5}`, "amount must be greater than 0"},
	}
	for _, tc := range cases {
		status, body := do(t, app, fiber.MethodPost, "/savings-goals", "alice", tc.body)
		assert.Equal(t, fiber.StatusBadRequest, status, tc.body)
		assert.Equal(t, tc.message, message(t, body), tc.body)
	}

	status, body := do(t, app, fiber.MethodGet, "/savings-goals", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHandlerUpdateValidatesOnlySentFields(t *testing.T) {
	app := newTestApp()

	status, body := do(t, app, fiber.MethodPost, "/savings-goals", "alice", `{"name":"Emergency fund","amount":5000}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created goalResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "alice", created.UserID)

	status, body = do(t, app, fiber.MethodPut, "/savings-goals/"+created.ID, "alice", `{"name":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "name is required", message(t, body))

	status, body = do(t, app, fiber.MethodPut, "/savings-goals/"+created.ID, "alice", `{"amount":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "amount must be greater than 0", message(t, body))

	status, body = do(t, app, fiber.MethodPut, "/savings-goals/"+created.ID, "alice", `{"amount":7500}`)
	require.Equal(t, fiber.StatusOK, status)
	var updated goalResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Emergency fund", updated.Name)
	assert.Equal(t, 7500.0, updated.Amount)
	assert.Equal(t, "alice", updated.UserID)

	status, body = do(t, app, fiber.MethodGet, "/savings-goals/"+created.ID, "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	var fetched goalResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, updated.Name, fetched.Name)
	assert.Equal(t, updated.Amount, fetched.Amount)
}

func TestHandlerOwnership(t *testing.T) {
	app := newTestApp()

	status, body := do(t, app, fiber.MethodPost, "/savings-goals", "alice", `{"name":"Car","amount":8000}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created goalResponse
	require.NoError(t, json.Unmarshal(body, &created))

	status, body = do(t, app, fiber.MethodPut, "/savings-goals/"+created.ID, "bob", `{"name":"Mine now"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Unauthorized access", message(t, body))

	status, _ = do(t, app, fiber.MethodDelete, "/savings-goals/"+created.ID, "bob", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = do(t, app, fiber.MethodDelete, "/savings-goals/"+created.ID, "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"Goal deleted","id":"`+created.ID+`"}`, string(body))

	status, body = do(t, app, fiber.MethodGet, "/savings-goals/"+created.ID, "alice", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Goal not found", message(t, body))
}
