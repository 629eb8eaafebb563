package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/services"
)

// dayResponse hides the company-wide lists from members; they only see their own assignments
// and the shared counters.
func dayResponse(user *models.User, view services.DayView) fiber.Map {
	response := fiber.Map{
		"date":     services.FormatDay(view.Date),
		"myTasks":  view.MyTasks,
		"myGroups": view.MyGroups,
		"stats":    view.Stats,
		"note":     view.Note,
	}
	if user.IsManager() {
		response["allTasks"] = view.AllTasks
		response["groups"] = view.Groups
	}
	return response
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, ok := parseDayParam(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	view, err := handler.days.DayView(c.UserContext(), user, user.CompanyID, day)
	if err != nil {
		return serviceError(c, err, "failed to load day")
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(dayResponse(user, view))
}

func (handler *Handler) GenerateDay(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, ok := parseDayParam(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	created, err := handler.generator.Generate(c.UserContext(), user, user.CompanyID, day)
	if err != nil {
		return serviceError(c, err, "failed to generate tasks")
	}
	return c.JSON(fiber.Map{"ok": true, "created": created, "date": services.FormatDay(day)})
}

func (handler *Handler) UpsertDayNote(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, ok := parseDayParam(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	var payload notePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	note, err := handler.notes.UpsertNote(c.UserContext(), user, user.CompanyID, day, payload.Content)
	if err != nil {
		return serviceError(c, err, "failed to save note")
	}
	return c.JSON(fiber.Map{"ok": true, "note": note})
}
