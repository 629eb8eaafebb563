package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/services"
)

func (handler *Handler) ListTaskLists(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	lists, err := handler.templates.ListTaskLists(c.UserContext(), user)
	if err != nil {
		return serviceError(c, err, "failed to load task lists")
	}
	return c.JSON(fiber.Map{"lists": lists})
}

func (handler *Handler) CreateTaskList(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	var payload taskListPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	list, err := handler.templates.CreateTaskList(c.UserContext(), user, payload.input())
	if err != nil {
		return serviceError(c, err, "failed to create task list")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "list": list})
}

func (handler *Handler) UpdateTaskList(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	var payload taskListPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	list, err := handler.templates.UpdateTaskList(c.UserContext(), user, listID, payload.input())
	if err != nil {
		return serviceError(c, err, "failed to update task list")
	}
	return c.JSON(fiber.Map{"ok": true, "list": list})
}

func (handler *Handler) DeleteTaskList(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.templates.DeleteTaskList(c.UserContext(), user, listID); err != nil {
		return serviceError(c, err, "failed to delete task list")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	var payload taskPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	task, err := handler.templates.CreateTask(c.UserContext(), user, listID, payload.input())
	if err != nil {
		return serviceError(c, err, "failed to create task")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "task": task})
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	var payload taskPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	task, err := handler.templates.UpdateTask(c.UserContext(), user, taskID, payload.input())
	if err != nil {
		return serviceError(c, err, "failed to update task")
	}
	return c.JSON(fiber.Map{"ok": true, "task": task})
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.templates.DeleteTask(c.UserContext(), user, taskID); err != nil {
		return serviceError(c, err, "failed to delete task")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GenerateForList(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	day := handler.queryDay(c)

	created, err := handler.generator.GenerateForList(c.UserContext(), user, user.CompanyID, listID, day)
	if err != nil {
		return serviceError(c, err, "failed to generate tasks")
	}
	return c.JSON(fiber.Map{"ok": true, "created": created, "date": services.FormatDay(day)})
}

func (handler *Handler) ImportNewList(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	var payload importPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	list, err := handler.imports.CreateListFromExtraction(c.UserContext(), user, payload.Name, payload.Tasks)
	if err != nil {
		return serviceError(c, err, "failed to import task list")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "list": list})
}

func (handler *Handler) ImportIntoList(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	var payload importPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	count, err := handler.imports.AppendToList(c.UserContext(), user, listID, payload.Tasks)
	if err != nil {
		return serviceError(c, err, "failed to import tasks")
	}
	return c.JSON(fiber.Map{"ok": true, "count": count})
}
