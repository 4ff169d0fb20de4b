package handlers

import (
	"errors"
	"fmt"

	"github.com/biosecret/voice-todo/common"
	"github.com/biosecret/voice-todo/logging"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var kindStatus = map[string]int{
	common.KindInvalidInput:          fiber.StatusBadRequest,
	common.KindDuplicateAccount:      fiber.StatusBadRequest,
	common.KindInvalidCredentials:    fiber.StatusBadRequest,
	common.KindMissingToken:          fiber.StatusUnauthorized,
	common.KindInvalidOrExpiredToken: fiber.StatusForbidden,
	common.KindNotFound:              fiber.StatusNotFound,
	common.KindStoreUnavailable:      fiber.StatusInternalServerError,
	common.KindUnexpected:            fiber.StatusInternalServerError,
}

// ErrorHandler renders errors returned by handlers and middleware. Service
// errors become {error, message} JSON; framework errors keep their status
// and a plain-text body.
func ErrorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).SendString(fe.Message)
		}

		kind := common.Kind(err)
		status := kindStatus[kind]
		message := err.Error()
		if status >= fiber.StatusInternalServerError {
			logger.Error(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "error", err)
			message = "internal error"
		}

		return c.Status(status).JSON(ErrorResponse{Error: kind, Message: message})
	}
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: malformed request body: %v", common.ErrInvalidInput, err)
}

// NotFound answers every request no route matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).SendString("Not Found")
}
