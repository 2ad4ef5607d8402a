package api

import (
	"github.com/gofiber/fiber/v3"
)

// Envelope status values.
const (
	statusOK    = "ok"
	statusError = "error"
)

// jsonSuccess returns a 200 response with data in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return jsonStatus(c, fiber.StatusOK, data)
}

// jsonStatus wraps data in the standard envelope under a non-200 success code.
func jsonStatus(c fiber.Ctx, code int, data any) error {
	return c.Status(code).JSON(fiber.Map{
		"status": statusOK,
		"data":   data,
	})
}

// jsonError returns an error envelope with the given HTTP status code.
func jsonError(c fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status": statusError,
		"error":  message,
	})
}
