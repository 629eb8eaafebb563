package db

import (
	"context"
	"time"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
)

type TaskInstanceRepository struct {
	database *gorm.DB
}

func NewTaskInstanceRepository(database *gorm.DB) *TaskInstanceRepository {
	return &TaskInstanceRepository{database: database}
}

func (repo *TaskInstanceRepository) FindByID(ctx context.Context, instanceID uint) (models.TaskInstance, error) {
	var instance models.TaskInstance
	if err := repo.database.WithContext(ctx).First(&instance, instanceID).Error; err != nil {
		return models.TaskInstance{}, err
	}
	return instance, nil
}

// ListByCompanyDay returns the company's instances dated in [dayStart, dayEnd) with their
// template, list, assignee and completer loaded.
func (repo *TaskInstanceRepository) ListByCompanyDay(ctx context.Context, companyID uint, dayStart time.Time, dayEnd time.Time) ([]models.TaskInstance, error) {
	instances := make([]models.TaskInstance, 0)
	if err := repo.database.WithContext(ctx).
		Preload("Task.TaskList").
		Preload("AssignedTo").
		Preload("CompletedBy").
		Where("company_id = ? AND date >= ? AND date < ?", companyID, dayStart, dayEnd).
		Order("created_at ASC, id ASC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// ListGeneratableTasks selects the active templates of the company (optionally of one list) that
// have no instance in [dayStart, dayEnd).
func (repo *TaskInstanceRepository) ListGeneratableTasks(ctx context.Context, companyID uint, listID *uint, dayStart time.Time, dayEnd time.Time) ([]models.Task, error) {
	query := repo.database.WithContext(ctx).
		Model(&models.Task{}).
		Joins("JOIN task_lists ON task_lists.id = tasks.task_list_id").
		Where("task_lists.company_id = ? AND tasks.is_active = ?", companyID, true).
		Where(
			"NOT EXISTS (SELECT 1 FROM task_instances existing WHERE existing.task_id = tasks.id AND existing.date >= ? AND existing.date < ?)",
			dayStart,
			dayEnd,
		)
	if listID != nil {
		query = query.Where("tasks.task_list_id = ?", *listID)
	}

	tasks := make([]models.Task, 0)
	if err := query.Order("tasks.sort_order ASC, tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateIgnoringConflicts inserts instances, silently dropping rows that collide with an existing
// (task_id, date). It returns the number of rows actually inserted.
func (repo *TaskInstanceRepository) CreateIgnoringConflicts(ctx context.Context, instances []models.TaskInstance) (int, error) {
	if len(instances) == 0 {
		return 0, nil
	}

	created := 0
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()
		for _, instance := range instances {
			result := tx.Exec(
				`INSERT INTO task_instances (task_id, company_id, date, status, assigned_to_user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(task_id, date) DO NOTHING`,
				instance.TaskID,
				instance.CompanyID,
				instance.Date,
				instance.Status,
				instance.AssignedToUserID,
				now,
				now,
			)
			if result.Error != nil {
				return result.Error
			}
			created += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (repo *TaskInstanceRepository) UpdateFields(ctx context.Context, instanceID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return repo.database.WithContext(ctx).Model(&models.TaskInstance{}).
		Where("id = ?", instanceID).
		Updates(updates).Error
}
