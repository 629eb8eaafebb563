package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

func TestCreateTaskListValidationAndDefaults(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	ctx := context.Background()
	manager := fixture.addUser(t, 1, models.RoleManager, "boss@acme.test")
	member := fixture.addUser(t, 1, models.RoleMember, "crew@acme.test")

	if _, err := fixture.templates.CreateTaskList(ctx, member, TaskListInput{Name: "Kitchen"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("member CreateTaskList() error = %v, want ErrUnauthorized", err)
	}

	_, err := fixture.templates.CreateTaskList(ctx, manager, TaskListInput{Name: " K "})
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Field != "name" || inputErr.Message != "Name is required" {
		t.Fatalf("short name error = %v, want name InputError", err)
	}

	blank := "   "
	list, err := fixture.templates.CreateTaskList(ctx, manager, TaskListInput{Name: "  Kitchen ", Location: &blank})
	if err != nil {
		t.Fatalf("CreateTaskList() returned error: %v", err)
	}
	if list.Name != "Kitchen" || list.Location != nil || list.DefaultFrequency != models.FrequencyUnknown {
		t.Fatalf("CreateTaskList() = %+v, want trimmed name, nil location, UNKNOWN frequency", list)
	}
	if list.CompanyID != 1 || list.CreatedByUserID != manager.ID {
		t.Fatalf("CreateTaskList() ownership = %d/%d", list.CompanyID, list.CreatedByUserID)
	}

	events := fixture.events.snapshot()
	if len(events) != 1 || events[0].Channel != realtime.ListsChannel(1) || events[0].Event != realtime.EventTaskListsRefresh {
		t.Fatalf("events = %+v, want one lists refresh", events)
	}
}

func TestCreateTaskAppendsAndDefaults(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	ctx := context.Background()
	manager := fixture.addUser(t, 1, models.RoleManager, "boss@acme.test")
	list := fixture.addList(t, manager, "Kitchen")

	first := fixture.addTask(t, manager, list.ID, "Mop floor", "")
	second := fixture.addTask(t, manager, list.ID, "Check fridge", models.PriorityHigh)
	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Fatalf("sort orders = %d, %d, want 0, 1", first.SortOrder, second.SortOrder)
	}
	if first.DefaultFrequency != models.FrequencyDaily || first.DefaultPriority != models.PriorityNormal || !first.IsActive {
		t.Fatalf("defaults = %+v, want DAILY NORMAL active", first)
	}

	if _, err := fixture.templates.CreateTask(ctx, manager, list.ID, TaskInput{Title: "Mop", DefaultPriority: "CRITICAL"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid priority error = %v, want ErrInvalidInput", err)
	}

	lists, err := fixture.templates.ListTaskLists(ctx, manager)
	if err != nil {
		t.Fatalf("ListTaskLists() returned error: %v", err)
	}
	if len(lists) != 1 || len(lists[0].Tasks) != 2 || lists[0].Tasks[0].ID != first.ID {
		t.Fatalf("ListTaskLists() = %+v, want one list with ordered tasks", lists)
	}
}

func TestUpdateTaskKeepsUnsetFields(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	ctx := context.Background()
	manager := fixture.addUser(t, 1, models.RoleManager, "boss@acme.test")
	list := fixture.addList(t, manager, "Kitchen")
	fixture.addTask(t, manager, list.ID, "Mop floor", models.PriorityNormal)
	task := fixture.addTask(t, manager, list.ID, "Check fridge", models.PriorityNormal)

	updated, err := fixture.templates.UpdateTask(ctx, manager, task.ID, TaskInput{Title: "Check fridge temperature", DefaultPriority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("UpdateTask() returned error: %v", err)
	}
	if updated.SortOrder != 1 || !updated.IsActive || updated.DefaultPriority != models.PriorityHigh {
		t.Fatalf("UpdateTask() = %+v, want sort order 1, active, HIGH", updated)
	}

	inactive := false
	updated, err = fixture.templates.UpdateTask(ctx, manager, task.ID, TaskInput{Title: "Check fridge temperature", IsActive: &inactive})
	if err != nil {
		t.Fatalf("UpdateTask(inactive) returned error: %v", err)
	}
	if updated.IsActive {
		t.Fatal("UpdateTask(inactive) kept the task active")
	}
}

func TestTemplateTenantIsolation(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	ctx := context.Background()
	manager := fixture.addUser(t, 1, models.RoleManager, "boss@acme.test")
	outsider := fixture.addUser(t, 2, models.RoleManager, "boss@other.test")
	member := fixture.addUser(t, 1, models.RoleMember, "crew@acme.test")
	list := fixture.addList(t, manager, "Kitchen")
	task := fixture.addTask(t, manager, list.ID, "Mop floor", models.PriorityNormal)

	if _, err := fixture.templates.UpdateTaskList(ctx, outsider, list.ID, TaskListInput{Name: "Stolen"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign UpdateTaskList() error = %v, want ErrNotFound", err)
	}
	if _, err := fixture.templates.CreateTask(ctx, outsider, list.ID, TaskInput{Title: "Intrude"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign CreateTask() error = %v, want ErrNotFound", err)
	}
	if err := fixture.templates.DeleteTask(ctx, outsider, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign DeleteTask() error = %v, want ErrNotFound", err)
	}
	if err := fixture.templates.DeleteTaskList(ctx, member, list.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("member DeleteTaskList() error = %v, want ErrUnauthorized", err)
	}

	lists, err := fixture.templates.ListTaskLists(ctx, outsider)
	if err != nil {
		t.Fatalf("ListTaskLists() returned error: %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("foreign ListTaskLists() = %d lists, want 0", len(lists))
	}
}

func TestDeleteTaskListCascades(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(t)
	ctx := context.Background()
	manager := fixture.addUser(t, 1, models.RoleManager, "boss@acme.test")
	list := fixture.addList(t, manager, "Kitchen")
	fixture.addTask(t, manager, list.ID, "Mop floor", models.PriorityNormal)
	fixture.addTask(t, manager, list.ID, "Check fridge", models.PriorityNormal)
	if _, err := fixture.generator.Generate(ctx, manager, 1, mustDay(t, "2024-01-10")); err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	if err := fixture.templates.DeleteTaskList(ctx, manager, list.ID); err != nil {
		t.Fatalf("DeleteTaskList() returned error: %v", err)
	}
	if len(fixture.store.tasks) != 0 || fixture.instanceCount() != 0 {
		t.Fatalf("cascade left %d tasks and %d instances", len(fixture.store.tasks), fixture.instanceCount())
	}
	if err := fixture.templates.DeleteTaskList(ctx, manager, list.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat DeleteTaskList() error = %v, want ErrNotFound", err)
	}
}
