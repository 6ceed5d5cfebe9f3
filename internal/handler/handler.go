// Package handler maps HTTP requests onto the service layer. Handlers stay
// thin: parse, delegate, translate errors to statuses.
package handler

import (
	"errors"
	"log"

	"go-hpp-dashboard/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// fail translates service errors into JSON error responses. Anything that is
// not a known sentinel is treated as an internal failure and kept out of the
// response body.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrInsufficientStock),
		errors.Is(err, apperr.ErrBudgetExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperr.ErrExternalService):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
