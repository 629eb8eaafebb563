package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) UpdateInstance(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	instanceID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	var payload instancePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	instance, err := handler.instances.UpdateInstance(c.UserContext(), user, instanceID, payload.update())
	if err != nil {
		return serviceError(c, err, "failed to update task")
	}
	return c.JSON(fiber.Map{"ok": true, "instance": instance})
}

func (handler *Handler) AssignInstance(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	instanceID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	var payload assigneePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	instance, err := handler.instances.AssignInstance(c.UserContext(), user, instanceID, payload.UserID)
	if err != nil {
		return serviceError(c, err, "failed to assign task")
	}
	return c.JSON(fiber.Map{"ok": true, "instance": instance})
}
