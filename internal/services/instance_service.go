package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

const MaxInstanceNoteLength = 400

type InstanceRepository interface {
	UpdateFields(ctx context.Context, instanceID uint, updates map[string]any) error
}

type InstanceUserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
}

// InstanceUpdate is a partial update: nil fields are left untouched.
type InstanceUpdate struct {
	Status *models.Status
	Note   *string
}

func (update InstanceUpdate) empty() bool {
	return update.Status == nil && update.Note == nil
}

// InstanceService is the occurrence state machine. DONE always carries completedAt and
// completedByUserId of the current completion; every other status carries neither.
type InstanceService struct {
	guard     *TenantGuard
	instances InstanceRepository
	users     InstanceUserRepository
	events    EventPublisher
	now       func() time.Time
}

func NewInstanceService(guard *TenantGuard, instances InstanceRepository, users InstanceUserRepository, events EventPublisher) *InstanceService {
	return &InstanceService{
		guard:     guard,
		instances: instances,
		users:     users,
		events:    events,
		now:       time.Now,
	}
}

func ValidateInstanceUpdate(update InstanceUpdate) error {
	if update.Status != nil && !update.Status.Valid() {
		return invalidInput("status", "Invalid status")
	}
	if update.Note != nil && utf8.RuneCountInString(*update.Note) > MaxInstanceNoteLength {
		return invalidInput("note", fmt.Sprintf("Note must be at most %d characters", MaxInstanceNoteLength))
	}
	return nil
}

// UpdateInstance applies a status and/or note change. Any member of the owning company may call
// it regardless of assignment.
func (service *InstanceService) UpdateInstance(ctx context.Context, user *models.User, instanceID uint, update InstanceUpdate) (models.TaskInstance, error) {
	if err := RequireUser(user); err != nil {
		return models.TaskInstance{}, err
	}
	if err := ValidateInstanceUpdate(update); err != nil {
		return models.TaskInstance{}, err
	}
	instance, err := service.guard.AuthorizeInstance(ctx, user, instanceID)
	if err != nil {
		return models.TaskInstance{}, err
	}
	if update.empty() {
		return instance, nil
	}

	updates := make(map[string]any, 4)
	if update.Status != nil {
		instance.Status = *update.Status
		if instance.Status == models.StatusDone {
			completedAt := service.now().UTC()
			completedBy := user.ID
			instance.CompletedAt = &completedAt
			instance.CompletedByUserID = &completedBy
		} else {
			instance.CompletedAt = nil
			instance.CompletedByUserID = nil
		}
		updates["status"] = instance.Status
		updates["completed_at"] = instance.CompletedAt
		updates["completed_by_user_id"] = instance.CompletedByUserID
	}
	if update.Note != nil {
		instance.Note = nil
		if *update.Note != "" {
			note := *update.Note
			instance.Note = &note
		}
		updates["note"] = instance.Note
	}

	if err := service.instances.UpdateFields(ctx, instance.ID, updates); err != nil {
		return models.TaskInstance{}, fmt.Errorf("update task instance: %w", err)
	}

	service.instanceChanged(instance)
	return instance, nil
}

func (service *InstanceService) SetStatus(ctx context.Context, user *models.User, instanceID uint, status models.Status) (models.TaskInstance, error) {
	return service.UpdateInstance(ctx, user, instanceID, InstanceUpdate{Status: &status})
}

func (service *InstanceService) SetNote(ctx context.Context, user *models.User, instanceID uint, note string) (models.TaskInstance, error) {
	return service.UpdateInstance(ctx, user, instanceID, InstanceUpdate{Note: &note})
}

// AssignInstance sets or clears the assignee. Assignment is informational and does not restrict
// who may complete the occurrence.
func (service *InstanceService) AssignInstance(ctx context.Context, user *models.User, instanceID uint, assigneeID *uint) (models.TaskInstance, error) {
	instance, err := service.guard.AuthorizeInstance(ctx, user, instanceID)
	if err != nil {
		return models.TaskInstance{}, err
	}
	if err := RequireManager(user); err != nil {
		return models.TaskInstance{}, err
	}

	if assigneeID != nil {
		assignee, err := service.users.FindByID(ctx, *assigneeID)
		if err != nil {
			if isRecordNotFound(err) {
				return models.TaskInstance{}, ErrNotFound
			}
			return models.TaskInstance{}, fmt.Errorf("load assignee: %w", err)
		}
		if assignee.CompanyID != instance.CompanyID {
			return models.TaskInstance{}, ErrNotFound
		}
	}

	if err := service.instances.UpdateFields(ctx, instance.ID, map[string]any{"assigned_to_user_id": assigneeID}); err != nil {
		return models.TaskInstance{}, fmt.Errorf("assign task instance: %w", err)
	}
	instance.AssignedToUserID = assigneeID

	service.instanceChanged(instance)
	return instance, nil
}

func (service *InstanceService) instanceChanged(instance models.TaskInstance) {
	publish(
		service.events,
		realtime.DayChannel(instance.CompanyID, instance.Date),
		realtime.EventTaskInstanceRefresh,
		map[string]any{"id": instance.ID},
	)
}
