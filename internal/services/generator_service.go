package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

type GeneratorInstanceRepository interface {
	ListGeneratableTasks(ctx context.Context, companyID uint, listID *uint, dayStart time.Time, dayEnd time.Time) ([]models.Task, error)
	CreateIgnoringConflicts(ctx context.Context, instances []models.TaskInstance) (int, error)
}

// GeneratorService materializes active templates into dated occurrences. Running it again for
// the same day is a no-op; concurrent runs are reconciled by the (task_id, date) unique index.
type GeneratorService struct {
	guard     *TenantGuard
	instances GeneratorInstanceRepository
	events    EventPublisher
}

func NewGeneratorService(guard *TenantGuard, instances GeneratorInstanceRepository, events EventPublisher) *GeneratorService {
	return &GeneratorService{
		guard:     guard,
		instances: instances,
		events:    events,
	}
}

// Generate returns how many occurrences were created for the company on targetDate.
func (service *GeneratorService) Generate(ctx context.Context, user *models.User, companyID uint, targetDate time.Time) (int, error) {
	if err := service.guard.AuthorizeManagerOfCompany(user, companyID); err != nil {
		return 0, err
	}

	day := NormalizeDay(targetDate)
	created, err := service.generate(ctx, companyID, nil, day)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		publish(service.events, realtime.DayChannel(companyID, day), realtime.EventTaskInstanceRefresh, map[string]any{"created": created})
	}
	return created, nil
}

// GenerateForList is Generate restricted to the templates of one list.
func (service *GeneratorService) GenerateForList(ctx context.Context, user *models.User, companyID uint, listID uint, targetDate time.Time) (int, error) {
	if err := service.guard.AuthorizeCompany(user, companyID); err != nil {
		return 0, err
	}
	if _, err := service.guard.AuthorizeTaskList(ctx, user, listID); err != nil {
		return 0, err
	}
	if err := RequireManager(user); err != nil {
		return 0, err
	}

	day := NormalizeDay(targetDate)
	created, err := service.generate(ctx, companyID, &listID, day)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		publish(service.events, realtime.DayChannel(companyID, day), realtime.EventTaskInstanceRefresh, map[string]any{"created": created})
		publish(service.events, realtime.ListsChannel(companyID), realtime.EventTaskListsRefresh, nil)
	}
	return created, nil
}

func (service *GeneratorService) generate(ctx context.Context, companyID uint, listID *uint, day time.Time) (int, error) {
	dayStart, dayEnd := DayRange(day)
	tasks, err := service.instances.ListGeneratableTasks(ctx, companyID, listID, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("select templates to generate: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	instances := make([]models.TaskInstance, 0, len(tasks))
	for _, task := range tasks {
		instances = append(instances, models.TaskInstance{
			TaskID:    task.ID,
			CompanyID: companyID,
			Date:      dayStart,
			Status:    models.StatusOpen,
		})
	}

	created, err := service.instances.CreateIgnoringConflicts(ctx, instances)
	if err != nil {
		return 0, fmt.Errorf("insert task instances: %w", err)
	}
	return created, nil
}
