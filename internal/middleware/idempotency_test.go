package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/deepakjoshi9239/finance-tracker/internal/apperror"
	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
	"github.com/deepakjoshi9239/finance-tracker/internal/logging"
)

const testUserHeader = "X-Test-User"

func setupIdempotencyApp(t *testing.T) (*fiber.App, *int32, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := logging.Discard()
	app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler(logger, false)})
	app.Use(func(c *fiber.Ctx) error {
		auth.Attach(c, auth.Principal{IdentityID: c.Get(testUserHeader)})
		return c.Next()
	})
	app.Use(Idempotency(cache, time.Minute, logger))

	var calls int32
	app.Post("/resource", func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&calls, 1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": n})
	})
	app.Post("/failing", func(c *fiber.Ctx) error {
		atomic.AddInt32(&calls, 1)
		return apperror.Validation("amount is required")
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &calls, cleanup
}

func postWithKey(t *testing.T, app *fiber.App, path, user, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(testUserHeader, user)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		status, _ := postWithKey(t, app, "/resource", "alice", "")
		if status != fiber.StatusCreated {
			t.Fatalf("expected %d got %d", fiber.StatusCreated, status)
		}
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Fatalf("expected handler to run twice, ran %d", got)
	}
}

func TestIdempotencyReturnsCachedResponse(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	status, payload := postWithKey(t, app, "/resource", "alice", "abc123")
	if status != fiber.StatusCreated {
		t.Fatalf("expected status %d got %d", fiber.StatusCreated, status)
	}

	// Second request should return the cached response without invoking handler again.
	status, cached := postWithKey(t, app, "/resource", "alice", "abc123")
	if status != fiber.StatusCreated {
		t.Fatalf("expected cached status %d got %d", fiber.StatusCreated, status)
	}
	if cached != payload {
		t.Fatalf("expected cached payload %s got %s", payload, cached)
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected handler to run once, ran %d", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cached), &decoded); err != nil {
		t.Fatalf("cached payload invalid json: %v", err)
	}
}

func TestIdempotencyKeysAreScopedPerIdentity(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	_, alice := postWithKey(t, app, "/resource", "alice", "shared")
	_, bob := postWithKey(t, app, "/resource", "bob", "shared")
	if alice == bob {
		t.Fatalf("bob received alice's stored response %s", bob)
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Fatalf("expected handler to run twice, ran %d", got)
	}
}

func TestIdempotencyReleasesKeyOnError(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		status, _ := postWithKey(t, app, "/failing", "alice", "retry-me")
		if status != fiber.StatusBadRequest {
			t.Fatalf("expected %d got %d", fiber.StatusBadRequest, status)
		}
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Fatalf("expected failed request to be retried, ran %d", got)
	}
}
