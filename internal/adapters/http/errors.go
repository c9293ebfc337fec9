package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/railfare/internal/core/domain"
	"github.com/samirrijal/railfare/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, unprocessable, internal_error, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errUnprocessable returns a 422 error for well-formed requests that cannot be priced.
func errUnprocessable(c *fiber.Ctx, msg string) error {
	return newError(c, 422, "unprocessable", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errTooManyRequests returns a 429 error.
func errTooManyRequests(c *fiber.Ctx, msg string) error {
	return newError(c, 429, "rate_limited", msg)
}

// errFromQuote maps a pricing error to a response.
func errFromQuote(c *fiber.Ctx, err error) error {
	switch {
	case usecases.IsInputError(err):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnknownRoute), errors.Is(err, domain.ErrInvalidPassengerCount):
		return errUnprocessable(c, err.Error())
	default:
		LoggerFromCtx(c.UserContext()).Error("fare quote failed", "error", err)
		return errInternal(c, "internal error")
	}
}
