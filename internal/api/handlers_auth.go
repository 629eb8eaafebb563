package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/services"
)

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"companyId": user.CompanyID,
	}
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := loginLimiterKey(c, credentials.Email)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return serviceError(c, err, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)

	return c.JSON(fiber.Map{"ok": true, "token": token, "user": userPayload(&user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(userPayload(user))
}
