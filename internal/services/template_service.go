package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

type TemplateListRepository interface {
	ListByCompanyWithTasks(ctx context.Context, companyID uint) ([]models.TaskList, error)
	Create(ctx context.Context, list *models.TaskList) error
	Update(ctx context.Context, list *models.TaskList) error
	DeleteCascade(ctx context.Context, listID uint) error
}

type TemplateTaskRepository interface {
	NextSortOrder(ctx context.Context, listID uint) (int, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	DeleteCascade(ctx context.Context, taskID uint) error
}

type TaskListInput struct {
	Name             string
	Description      *string
	Location         *string
	GroupName        *string
	DefaultFrequency models.Frequency
}

type TaskInput struct {
	Title            string
	Description      *string
	Category         *string
	DefaultFrequency models.Frequency
	DefaultPriority  models.Priority
	SortOrder        *int
	IsActive         *bool
}

type TemplateService struct {
	guard  *TenantGuard
	lists  TemplateListRepository
	tasks  TemplateTaskRepository
	events EventPublisher
}

func NewTemplateService(guard *TenantGuard, lists TemplateListRepository, tasks TemplateTaskRepository, events EventPublisher) *TemplateService {
	return &TemplateService{
		guard:  guard,
		lists:  lists,
		tasks:  tasks,
		events: events,
	}
}

func NormalizeTaskListInput(input TaskListInput) (TaskListInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(input.Name) < 2 {
		return input, invalidInput("name", "Name is required")
	}
	input.Description = optionalText(input.Description)
	input.Location = optionalText(input.Location)
	input.GroupName = optionalText(input.GroupName)
	if input.DefaultFrequency == "" {
		input.DefaultFrequency = models.FrequencyUnknown
	}
	if !input.DefaultFrequency.Valid() {
		return input, invalidInput("defaultFrequency", "Invalid frequency")
	}
	return input, nil
}

func NormalizeTaskInput(input TaskInput) (TaskInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if utf8.RuneCountInString(input.Title) < 2 {
		return input, invalidInput("title", "Title is required")
	}
	input.Description = optionalText(input.Description)
	input.Category = optionalText(input.Category)
	if input.DefaultFrequency == "" {
		input.DefaultFrequency = models.FrequencyDaily
	}
	if !input.DefaultFrequency.Valid() {
		return input, invalidInput("defaultFrequency", "Invalid frequency")
	}
	if input.DefaultPriority == "" {
		input.DefaultPriority = models.PriorityNormal
	}
	if !input.DefaultPriority.Valid() {
		return input, invalidInput("defaultPriority", "Invalid priority")
	}
	return input, nil
}

// ListTaskLists is readable by every member of the tenant.
func (service *TemplateService) ListTaskLists(ctx context.Context, user *models.User) ([]models.TaskList, error) {
	if err := RequireUser(user); err != nil {
		return nil, err
	}
	lists, err := service.lists.ListByCompanyWithTasks(ctx, user.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	return lists, nil
}

func (service *TemplateService) CreateTaskList(ctx context.Context, user *models.User, input TaskListInput) (models.TaskList, error) {
	if err := RequireManager(user); err != nil {
		return models.TaskList{}, err
	}
	input, err := NormalizeTaskListInput(input)
	if err != nil {
		return models.TaskList{}, err
	}

	list := models.TaskList{
		Name:             input.Name,
		Description:      input.Description,
		Location:         input.Location,
		GroupName:        input.GroupName,
		DefaultFrequency: input.DefaultFrequency,
		CompanyID:        user.CompanyID,
		CreatedByUserID:  user.ID,
	}
	if err := service.lists.Create(ctx, &list); err != nil {
		return models.TaskList{}, fmt.Errorf("create task list: %w", err)
	}

	service.listsChanged(user.CompanyID)
	return list, nil
}

func (service *TemplateService) UpdateTaskList(ctx context.Context, user *models.User, listID uint, input TaskListInput) (models.TaskList, error) {
	if err := RequireUser(user); err != nil {
		return models.TaskList{}, err
	}
	input, err := NormalizeTaskListInput(input)
	if err != nil {
		return models.TaskList{}, err
	}
	list, err := service.guard.AuthorizeTaskList(ctx, user, listID)
	if err != nil {
		return models.TaskList{}, err
	}
	if err := RequireManager(user); err != nil {
		return models.TaskList{}, err
	}

	list.Name = input.Name
	list.Description = input.Description
	list.Location = input.Location
	list.GroupName = input.GroupName
	list.DefaultFrequency = input.DefaultFrequency
	if err := service.lists.Update(ctx, &list); err != nil {
		return models.TaskList{}, fmt.Errorf("update task list: %w", err)
	}

	service.listsChanged(user.CompanyID)
	return list, nil
}

// DeleteTaskList removes the list together with its tasks and their historical instances.
func (service *TemplateService) DeleteTaskList(ctx context.Context, user *models.User, listID uint) error {
	if _, err := service.guard.AuthorizeTaskList(ctx, user, listID); err != nil {
		return err
	}
	if err := RequireManager(user); err != nil {
		return err
	}
	if err := service.lists.DeleteCascade(ctx, listID); err != nil {
		return fmt.Errorf("delete task list: %w", err)
	}

	service.listsChanged(user.CompanyID)
	return nil
}

// CreateTask appends the task to the end of the list unless an explicit sort order is given.
func (service *TemplateService) CreateTask(ctx context.Context, user *models.User, listID uint, input TaskInput) (models.Task, error) {
	if err := RequireUser(user); err != nil {
		return models.Task{}, err
	}
	input, err := NormalizeTaskInput(input)
	if err != nil {
		return models.Task{}, err
	}
	if _, err := service.guard.AuthorizeTaskList(ctx, user, listID); err != nil {
		return models.Task{}, err
	}
	if err := RequireManager(user); err != nil {
		return models.Task{}, err
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		sortOrder, err = service.tasks.NextSortOrder(ctx, listID)
		if err != nil {
			return models.Task{}, fmt.Errorf("resolve sort order: %w", err)
		}
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	task := models.Task{
		TaskListID:       listID,
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		DefaultFrequency: input.DefaultFrequency,
		DefaultPriority:  input.DefaultPriority,
		SortOrder:        sortOrder,
		IsActive:         isActive,
	}
	if err := service.tasks.Create(ctx, &task); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	service.listsChanged(user.CompanyID)
	return task, nil
}

// UpdateTask replaces the mutable attributes. SortOrder and IsActive keep their stored values
// when not supplied.
func (service *TemplateService) UpdateTask(ctx context.Context, user *models.User, taskID uint, input TaskInput) (models.Task, error) {
	if err := RequireUser(user); err != nil {
		return models.Task{}, err
	}
	input, err := NormalizeTaskInput(input)
	if err != nil {
		return models.Task{}, err
	}
	task, err := service.guard.AuthorizeTask(ctx, user, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if err := RequireManager(user); err != nil {
		return models.Task{}, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Category = input.Category
	task.DefaultFrequency = input.DefaultFrequency
	task.DefaultPriority = input.DefaultPriority
	if input.SortOrder != nil {
		task.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}
	if err := service.tasks.Update(ctx, &task); err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	service.listsChanged(user.CompanyID)
	return task, nil
}

func (service *TemplateService) DeleteTask(ctx context.Context, user *models.User, taskID uint) error {
	if _, err := service.guard.AuthorizeTask(ctx, user, taskID); err != nil {
		return err
	}
	if err := RequireManager(user); err != nil {
		return err
	}
	if err := service.tasks.DeleteCascade(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	service.listsChanged(user.CompanyID)
	return nil
}

func (service *TemplateService) listsChanged(companyID uint) {
	publish(service.events, realtime.ListsChannel(companyID), realtime.EventTaskListsRefresh, nil)
}
