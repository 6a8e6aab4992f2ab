package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tps-admin/pkg/logger"
)

// ErrorHandler logs unhandled handler errors and answers with a plain text
// status message.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An error occurred"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		logger.Default().Log(logger.LogEntry{
			Level:     logger.LevelError,
			Category:  logger.CategoryAPI,
			Action:    "error_handler",
			Message:   "Request error occurred",
			RequestID: RequestID(c),
			Error:     err.Error(),
			Data: map[string]interface{}{
				"status_code": code,
				"path":        c.Path(),
				"method":      c.Method(),
			},
		})

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
}
