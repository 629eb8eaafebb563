package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/taskflow/internal/models"
)

type TenantTaskListRepository interface {
	FindByID(ctx context.Context, listID uint) (models.TaskList, error)
}

type TenantTaskRepository interface {
	FindByID(ctx context.Context, taskID uint) (models.Task, error)
}

type TenantInstanceRepository interface {
	FindByID(ctx context.Context, instanceID uint) (models.TaskInstance, error)
}

// TenantGuard resolves the company that owns an entity and compares it with the acting user's
// company before anything is read or mutated. A foreign entity is reported exactly like a missing
// one so tenants cannot probe each other's ids.
type TenantGuard struct {
	lists     TenantTaskListRepository
	tasks     TenantTaskRepository
	instances TenantInstanceRepository
}

func NewTenantGuard(lists TenantTaskListRepository, tasks TenantTaskRepository, instances TenantInstanceRepository) *TenantGuard {
	return &TenantGuard{
		lists:     lists,
		tasks:     tasks,
		instances: instances,
	}
}

func RequireUser(user *models.User) error {
	if user == nil || user.ID == 0 {
		return ErrUnauthenticated
	}
	return nil
}

func RequireManager(user *models.User) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if !user.IsManager() {
		return ErrUnauthorized
	}
	return nil
}

func (guard *TenantGuard) AuthorizeCompany(user *models.User, companyID uint) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if user.CompanyID != companyID {
		return ErrNotFound
	}
	return nil
}

// AuthorizeManagerOfCompany applies the tenant match first and the role gate second.
func (guard *TenantGuard) AuthorizeManagerOfCompany(user *models.User, companyID uint) error {
	if err := guard.AuthorizeCompany(user, companyID); err != nil {
		return err
	}
	return RequireManager(user)
}

func (guard *TenantGuard) AuthorizeTaskList(ctx context.Context, user *models.User, listID uint) (models.TaskList, error) {
	if err := RequireUser(user); err != nil {
		return models.TaskList{}, err
	}
	list, err := guard.lists.FindByID(ctx, listID)
	if err != nil {
		if isRecordNotFound(err) {
			return models.TaskList{}, ErrNotFound
		}
		return models.TaskList{}, fmt.Errorf("load task list: %w", err)
	}
	if list.CompanyID != user.CompanyID {
		return models.TaskList{}, ErrNotFound
	}
	return list, nil
}

func (guard *TenantGuard) AuthorizeTask(ctx context.Context, user *models.User, taskID uint) (models.Task, error) {
	if err := RequireUser(user); err != nil {
		return models.Task{}, err
	}
	task, err := guard.tasks.FindByID(ctx, taskID)
	if err != nil {
		if isRecordNotFound(err) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("load task: %w", err)
	}
	if task.TaskList == nil || task.TaskList.CompanyID != user.CompanyID {
		return models.Task{}, ErrNotFound
	}
	return task, nil
}

func (guard *TenantGuard) AuthorizeInstance(ctx context.Context, user *models.User, instanceID uint) (models.TaskInstance, error) {
	if err := RequireUser(user); err != nil {
		return models.TaskInstance{}, err
	}
	instance, err := guard.instances.FindByID(ctx, instanceID)
	if err != nil {
		if isRecordNotFound(err) {
			return models.TaskInstance{}, ErrNotFound
		}
		return models.TaskInstance{}, fmt.Errorf("load task instance: %w", err)
	}
	if instance.CompanyID != user.CompanyID {
		return models.TaskInstance{}, ErrNotFound
	}
	return instance, nil
}
