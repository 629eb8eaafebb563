package db

import (
	"context"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
)

type TaskListRepository struct {
	database *gorm.DB
}

func NewTaskListRepository(database *gorm.DB) *TaskListRepository {
	return &TaskListRepository{database: database}
}

func (repo *TaskListRepository) FindByID(ctx context.Context, listID uint) (models.TaskList, error) {
	var list models.TaskList
	if err := repo.database.WithContext(ctx).First(&list, listID).Error; err != nil {
		return models.TaskList{}, err
	}
	return list, nil
}

func (repo *TaskListRepository) ListByCompanyWithTasks(ctx context.Context, companyID uint) ([]models.TaskList, error) {
	lists := make([]models.TaskList, 0)
	if err := repo.database.WithContext(ctx).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC, id ASC")
		}).
		Where("company_id = ?", companyID).
		Order("created_at ASC, id ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (repo *TaskListRepository) Create(ctx context.Context, list *models.TaskList) error {
	return repo.database.WithContext(ctx).Omit("Tasks").Create(list).Error
}

// CreateWithTasks inserts the list and its tasks atomically.
func (repo *TaskListRepository) CreateWithTasks(ctx context.Context, list *models.TaskList, tasks []models.Task) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks").Create(list).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		for index := range tasks {
			tasks[index].TaskListID = list.ID
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return err
		}
		list.Tasks = tasks
		return nil
	})
}

func (repo *TaskListRepository) Update(ctx context.Context, list *models.TaskList) error {
	return repo.database.WithContext(ctx).Model(&models.TaskList{}).
		Where("id = ?", list.ID).
		Select("name", "description", "location", "group_name", "default_frequency", "updated_at").
		Updates(list).Error
}

// DeleteCascade removes the list, its tasks and every instance generated from them.
func (repo *TaskListRepository) DeleteCascade(ctx context.Context, listID uint) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("task_list_id = ?", listID)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskInstance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_list_id = ?", listID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TaskList{}, listID).Error
	})
}
