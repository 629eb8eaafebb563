package db

import (
	"context"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
)

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

// FindByID loads the task with its owning list so callers can resolve the company.
func (repo *TaskRepository) FindByID(ctx context.Context, taskID uint) (models.Task, error) {
	var task models.Task
	if err := repo.database.WithContext(ctx).Preload("TaskList").First(&task, taskID).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (repo *TaskRepository) NextSortOrder(ctx context.Context, listID uint) (int, error) {
	var row struct {
		Next int `gorm:"column:next"`
	}
	if err := repo.database.WithContext(ctx).Model(&models.Task{}).
		Select("COALESCE(MAX(sort_order) + 1, 0) AS next").
		Where("task_list_id = ?", listID).
		Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Next, nil
}

func (repo *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return repo.database.WithContext(ctx).Omit("TaskList").Create(task).Error
}

func (repo *TaskRepository) CreateBatch(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return repo.database.WithContext(ctx).Omit("TaskList").Create(&tasks).Error
}

func (repo *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return repo.database.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", task.ID).
		Select("title", "description", "category", "default_frequency", "default_priority", "sort_order", "is_active", "updated_at").
		Updates(task).Error
}

// DeleteCascade removes the task and its historical instances.
func (repo *TaskRepository) DeleteCascade(ctx context.Context, taskID uint) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskInstance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, taskID).Error
	})
}
