package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Message   string `json:"error"`             // Human-readable message
	Details   string `json:"details,omitempty"` // Cause, when there is one worth showing
	Code      string `json:"code"`              // bad_request, not_found, upstream_error or a validation code
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code, message, details string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Message:   message,
		Details:   details,
		Code:      code,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, code, msg, details string) error {
	return newError(c, fiber.StatusBadRequest, code, msg, details)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg, "")
}

// errUpstream returns a 500 error for a failed places API call.
func errUpstream(c *fiber.Ctx, msg, details string) error {
	return newError(c, fiber.StatusInternalServerError, "upstream_error", msg, details)
}

// respondError maps a service error onto its HTTP response and logs it.
// failMsg is the message used for upstream failures.
func respondError(c *fiber.Ctx, err error, failMsg string) error {
	logger := LoggerFromCtx(c.UserContext())

	if ve, ok := domain.IsValidation(err); ok {
		logger.Warn("request rejected", "code", string(ve.Code), "field", ve.Field, "error", ve.Message)
		return errBadRequest(c, string(ve.Code), ve.Message, ve.Details)
	}
	if errors.Is(err, domain.ErrNotFound) {
		logger.Info("restaurant not found", "path", c.Path())
		return errNotFound(c, "Restaurant not found")
	}

	details := err.Error()
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		details = ue.Err.Error()
	}
	logger.Error(failMsg, "error", err)
	return errUpstream(c, failMsg, details)
}
