package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

// ExtractedTask is one candidate produced by the document extraction collaborator.
type ExtractedTask struct {
	Title              string  `json:"title"`
	Description        *string `json:"description"`
	SuggestedCategory  *string `json:"suggested_category"`
	SuggestedFrequency *string `json:"suggested_frequency"`
	SuggestedPriority  *string `json:"suggested_priority"`
}

type ImportListRepository interface {
	CreateWithTasks(ctx context.Context, list *models.TaskList, tasks []models.Task) error
}

type ImportTaskRepository interface {
	CreateBatch(ctx context.Context, tasks []models.Task) error
}

type ImportService struct {
	guard  *TenantGuard
	lists  ImportListRepository
	tasks  ImportTaskRepository
	events EventPublisher
}

func NewImportService(guard *TenantGuard, lists ImportListRepository, tasks ImportTaskRepository, events EventPublisher) *ImportService {
	return &ImportService{
		guard:  guard,
		lists:  lists,
		tasks:  tasks,
		events: events,
	}
}

// MapFrequency maps a free-form suggestion onto the canonical enum; anything unrecognized is UNKNOWN.
func MapFrequency(raw *string) models.Frequency {
	if raw == nil {
		return models.FrequencyUnknown
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "once":
		return models.FrequencyOnce
	case "daily":
		return models.FrequencyDaily
	case "weekly":
		return models.FrequencyWeekly
	case "monthly":
		return models.FrequencyMonthly
	default:
		return models.FrequencyUnknown
	}
}

// MapPriority maps a free-form suggestion onto the canonical enum; anything unrecognized is NORMAL.
func MapPriority(raw *string) models.Priority {
	if raw == nil {
		return models.PriorityNormal
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "high":
		return models.PriorityHigh
	case "low":
		return models.PriorityLow
	default:
		return models.PriorityNormal
	}
}

// TasksFromExtraction converts candidates into templates ordered by their batch position.
func TasksFromExtraction(listID uint, extracted []ExtractedTask) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(extracted))
	for index, candidate := range extracted {
		title := strings.TrimSpace(candidate.Title)
		if title == "" {
			return nil, invalidInput(fmt.Sprintf("tasks[%d].title", index), "Task title is required")
		}
		tasks = append(tasks, models.Task{
			TaskListID:       listID,
			Title:            title,
			Description:      optionalText(candidate.Description),
			Category:         optionalText(candidate.SuggestedCategory),
			DefaultFrequency: MapFrequency(candidate.SuggestedFrequency),
			DefaultPriority:  MapPriority(candidate.SuggestedPriority),
			SortOrder:        index,
			IsActive:         true,
		})
	}
	return tasks, nil
}

func (service *ImportService) CreateListFromExtraction(ctx context.Context, user *models.User, name string, extracted []ExtractedTask) (models.TaskList, error) {
	if err := RequireManager(user); err != nil {
		return models.TaskList{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.TaskList{}, invalidInput("name", "List name is required")
	}
	tasks, err := TasksFromExtraction(0, extracted)
	if err != nil {
		return models.TaskList{}, err
	}

	list := models.TaskList{
		Name:             name,
		DefaultFrequency: models.FrequencyUnknown,
		CompanyID:        user.CompanyID,
		CreatedByUserID:  user.ID,
	}
	if err := service.lists.CreateWithTasks(ctx, &list, tasks); err != nil {
		return models.TaskList{}, fmt.Errorf("create imported task list: %w", err)
	}

	publish(service.events, realtime.ListsChannel(user.CompanyID), realtime.EventTaskListsRefresh, nil)
	return list, nil
}

// AppendToList adds extracted tasks to an existing list and returns how many were added.
func (service *ImportService) AppendToList(ctx context.Context, user *models.User, listID uint, extracted []ExtractedTask) (int, error) {
	if err := RequireUser(user); err != nil {
		return 0, err
	}
	tasks, err := TasksFromExtraction(listID, extracted)
	if err != nil {
		return 0, err
	}
	if _, err := service.guard.AuthorizeTaskList(ctx, user, listID); err != nil {
		return 0, err
	}
	if err := RequireManager(user); err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	if err := service.tasks.CreateBatch(ctx, tasks); err != nil {
		return 0, fmt.Errorf("append imported tasks: %w", err)
	}

	publish(service.events, realtime.ListsChannel(user.CompanyID), realtime.EventTaskListsRefresh, nil)
	return len(tasks), nil
}
