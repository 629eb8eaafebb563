package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/models"
)

const (
	authCookieName = "taskflow_auth"
	contextUserKey = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// AuthRequired resolves the acting user from the bearer token or the auth cookie.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) ManagerOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.IsManager() {
		return apiError(c, fiber.StatusForbidden, "manager access required")
	}
	return c.Next()
}
