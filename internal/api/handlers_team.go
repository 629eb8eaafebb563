package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/services"
)

func (handler *Handler) ListTeam(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	users, err := handler.team.ListTeam(c.UserContext(), user)
	if err != nil {
		return serviceError(c, err, "failed to load team")
	}

	members := make([]fiber.Map, 0, len(users))
	for index := range users {
		members = append(members, userPayload(&users[index]))
	}
	return c.JSON(fiber.Map{"users": members})
}

func (handler *Handler) InviteUser(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	var payload invitePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	invited, err := handler.team.InviteUser(c.UserContext(), user, services.InviteInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Role:     models.Role(payload.Role),
		Password: payload.Password,
	})
	if err != nil {
		return serviceError(c, err, "failed to invite user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "user": userPayload(&invited)})
}
