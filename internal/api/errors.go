package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps domain failures onto HTTP statuses. Anything unexpected is logged and
// reported with fallback so storage details never leak.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	var inputErr *services.InputError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrUnauthorized):
		return apiError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.As(err, &inputErr):
		return apiError(c, fiber.StatusBadRequest, inputErr.Message)
	case errors.Is(err, services.ErrInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, conflictMessage(err))
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

// conflictMessage strips the sentinel suffix from a wrapped conflict error.
func conflictMessage(err error) string {
	message := strings.TrimSuffix(err.Error(), ": "+services.ErrConflict.Error())
	if message == "" || message == services.ErrConflict.Error() {
		return "conflict"
	}
	return message
}
