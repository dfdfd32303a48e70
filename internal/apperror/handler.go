package apperror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const genericFailure = "Something went wrong. Please try again later."

// Handler renders errors returned from Fiber handlers as {"message": ...}
// bodies. exposeDetail adds the internal cause of unexpected failures to the
// body; it should only be enabled in development.
func Handler(logger *slog.Logger, exposeDetail bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := http.StatusInternalServerError
		body := fiber.Map{"message": genericFailure}

		var appErr *Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status()
			body["message"] = appErr.Message
			if appErr.Field != "" {
				body["field"] = appErr.Field
			}
			if appErr.Kind == KindUnexpected {
				logger.Error("request failed",
					slog.String("method", c.Method()),
					slog.String("path", c.Path()),
					slog.Any("error", err),
				)
				if exposeDetail && appErr.Err != nil {
					body["error"] = appErr.Err.Error()
				}
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			body["message"] = fiberErr.Message
		default:
			logger.Error("unclassified error",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			if exposeDetail {
				body["error"] = err.Error()
			}
		}

		return c.Status(status).JSON(body)
	}
}
