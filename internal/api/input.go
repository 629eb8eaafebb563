package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/services"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type taskListPayload struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	Location         *string `json:"location"`
	GroupName        *string `json:"groupName"`
	DefaultFrequency string  `json:"defaultFrequency"`
}

func (payload taskListPayload) input() services.TaskListInput {
	return services.TaskListInput{
		Name:             payload.Name,
		Description:      payload.Description,
		Location:         payload.Location,
		GroupName:        payload.GroupName,
		DefaultFrequency: models.Frequency(strings.ToUpper(strings.TrimSpace(payload.DefaultFrequency))),
	}
}

type taskPayload struct {
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	Category         *string `json:"category"`
	DefaultFrequency string  `json:"defaultFrequency"`
	DefaultPriority  string  `json:"defaultPriority"`
	SortOrder        *int    `json:"sortOrder"`
	IsActive         *bool   `json:"isActive"`
}

func (payload taskPayload) input() services.TaskInput {
	return services.TaskInput{
		Title:            payload.Title,
		Description:      payload.Description,
		Category:         payload.Category,
		DefaultFrequency: models.Frequency(strings.ToUpper(strings.TrimSpace(payload.DefaultFrequency))),
		DefaultPriority:  models.Priority(strings.ToUpper(strings.TrimSpace(payload.DefaultPriority))),
		SortOrder:        payload.SortOrder,
		IsActive:         payload.IsActive,
	}
}

type instancePayload struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

func (payload instancePayload) update() services.InstanceUpdate {
	update := services.InstanceUpdate{Note: payload.Note}
	if payload.Status != nil {
		status := models.Status(strings.ToUpper(strings.TrimSpace(*payload.Status)))
		update.Status = &status
	}
	return update
}

type assigneePayload struct {
	UserID *uint `json:"userId"`
}

type notePayload struct {
	Content string `json:"content"`
}

type importPayload struct {
	Name  string                   `json:"name"`
	Tasks []services.ExtractedTask `json:"tasks"`
}

type invitePayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parseDayParam(c *fiber.Ctx) (time.Time, bool) {
	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// queryDay reads ?date=, falling back to today when it is absent or malformed.
func (handler *Handler) queryDay(c *fiber.Ctx) time.Time {
	return services.ParseDayOrToday(c.Query("date"), handler.now())
}
