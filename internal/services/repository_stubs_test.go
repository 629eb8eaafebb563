package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
)

type memoryStore struct {
	mu        sync.Mutex
	nextID    uint
	users     map[uint]models.User
	lists     map[uint]models.TaskList
	tasks     map[uint]models.Task
	instances map[uint]models.TaskInstance
	notes     map[uint]models.ManagerNote
	clock     time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID:    1,
		users:     make(map[uint]models.User),
		lists:     make(map[uint]models.TaskList),
		tasks:     make(map[uint]models.Task),
		instances: make(map[uint]models.TaskInstance),
		notes:     make(map[uint]models.ManagerNote),
		clock:     time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (store *memoryStore) allocateID() uint {
	id := store.nextID
	store.nextID++
	return id
}

// tick returns strictly increasing timestamps so creation order is observable.
func (store *memoryStore) tick() time.Time {
	store.clock = store.clock.Add(time.Second)
	return store.clock
}

func (store *memoryStore) withTemplate(instance models.TaskInstance) models.TaskInstance {
	task, ok := store.tasks[instance.TaskID]
	if !ok {
		return instance
	}
	if list, ok := store.lists[task.TaskListID]; ok {
		listCopy := list
		task.TaskList = &listCopy
	}
	instance.Task = &task
	return instance
}

type eventRecord struct {
	Channel string
	Event   string
	Payload any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []eventRecord
}

func (recorder *eventRecorder) Publish(channel string, event string, payload any) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.events = append(recorder.events, eventRecord{Channel: channel, Event: event, Payload: payload})
}

func (recorder *eventRecorder) snapshot() []eventRecord {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]eventRecord(nil), recorder.events...)
}

type userRepositoryStub struct{ store *memoryStore }

func (stub userRepositoryStub) FindByID(_ context.Context, userID uint) (models.User, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	user, ok := stub.store.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub userRepositoryStub) FindByNormalizedEmail(_ context.Context, email string) (models.User, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	for _, user := range stub.store.users {
		if strings.EqualFold(strings.TrimSpace(user.Email), email) {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub userRepositoryStub) ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error) {
	_, err := stub.FindByNormalizedEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (stub userRepositoryStub) ListByCompany(_ context.Context, companyID uint) ([]models.User, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	users := make([]models.User, 0)
	for _, user := range stub.store.users {
		if user.CompanyID == companyID {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (stub userRepositoryStub) Create(_ context.Context, user *models.User) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	user.ID = stub.store.allocateID()
	user.CreatedAt = stub.store.tick()
	stub.store.users[user.ID] = *user
	return nil
}

func (stub userRepositoryStub) UpdatePasswordHash(_ context.Context, userID uint, passwordHash string) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	user, ok := stub.store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	stub.store.users[userID] = user
	return nil
}

type listRepositoryStub struct{ store *memoryStore }

func (stub listRepositoryStub) FindByID(_ context.Context, listID uint) (models.TaskList, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	list, ok := stub.store.lists[listID]
	if !ok {
		return models.TaskList{}, gorm.ErrRecordNotFound
	}
	return list, nil
}

func (stub listRepositoryStub) ListByCompanyWithTasks(_ context.Context, companyID uint) ([]models.TaskList, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	lists := make([]models.TaskList, 0)
	for _, list := range stub.store.lists {
		if list.CompanyID != companyID {
			continue
		}
		list.Tasks = make([]models.Task, 0)
		for _, task := range stub.store.tasks {
			if task.TaskListID == list.ID {
				list.Tasks = append(list.Tasks, task)
			}
		}
		sort.Slice(list.Tasks, func(i, j int) bool {
			if list.Tasks[i].SortOrder == list.Tasks[j].SortOrder {
				return list.Tasks[i].ID < list.Tasks[j].ID
			}
			return list.Tasks[i].SortOrder < list.Tasks[j].SortOrder
		})
		lists = append(lists, list)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
	return lists, nil
}

func (stub listRepositoryStub) Create(_ context.Context, list *models.TaskList) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	list.ID = stub.store.allocateID()
	list.CreatedAt = stub.store.tick()
	list.UpdatedAt = list.CreatedAt
	stored := *list
	stored.Tasks = nil
	stub.store.lists[list.ID] = stored
	return nil
}

func (stub listRepositoryStub) CreateWithTasks(ctx context.Context, list *models.TaskList, tasks []models.Task) error {
	if err := stub.Create(ctx, list); err != nil {
		return err
	}
	for index := range tasks {
		tasks[index].TaskListID = list.ID
	}
	if err := (taskRepositoryStub{store: stub.store}).CreateBatch(ctx, tasks); err != nil {
		return err
	}
	list.Tasks = tasks
	return nil
}

func (stub listRepositoryStub) Update(_ context.Context, list *models.TaskList) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	if _, ok := stub.store.lists[list.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	list.UpdatedAt = stub.store.tick()
	stored := *list
	stored.Tasks = nil
	stub.store.lists[list.ID] = stored
	return nil
}

func (stub listRepositoryStub) DeleteCascade(_ context.Context, listID uint) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	for taskID, task := range stub.store.tasks {
		if task.TaskListID != listID {
			continue
		}
		stub.store.deleteTaskLocked(taskID)
	}
	delete(stub.store.lists, listID)
	return nil
}

func (store *memoryStore) deleteTaskLocked(taskID uint) {
	for instanceID, instance := range store.instances {
		if instance.TaskID == taskID {
			delete(store.instances, instanceID)
		}
	}
	delete(store.tasks, taskID)
}

type taskRepositoryStub struct{ store *memoryStore }

func (stub taskRepositoryStub) FindByID(_ context.Context, taskID uint) (models.Task, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	task, ok := stub.store.tasks[taskID]
	if !ok {
		return models.Task{}, gorm.ErrRecordNotFound
	}
	if list, ok := stub.store.lists[task.TaskListID]; ok {
		task.TaskList = &list
	}
	return task, nil
}

func (stub taskRepositoryStub) NextSortOrder(_ context.Context, listID uint) (int, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	next := 0
	for _, task := range stub.store.tasks {
		if task.TaskListID == listID && task.SortOrder+1 > next {
			next = task.SortOrder + 1
		}
	}
	return next, nil
}

func (stub taskRepositoryStub) Create(_ context.Context, task *models.Task) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	task.ID = stub.store.allocateID()
	task.CreatedAt = stub.store.tick()
	task.UpdatedAt = task.CreatedAt
	stored := *task
	stored.TaskList = nil
	stub.store.tasks[task.ID] = stored
	return nil
}

func (stub taskRepositoryStub) CreateBatch(ctx context.Context, tasks []models.Task) error {
	for index := range tasks {
		if err := stub.Create(ctx, &tasks[index]); err != nil {
			return err
		}
	}
	return nil
}

func (stub taskRepositoryStub) Update(_ context.Context, task *models.Task) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	if _, ok := stub.store.tasks[task.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *task
	stored.TaskList = nil
	stub.store.tasks[task.ID] = stored
	return nil
}

func (stub taskRepositoryStub) DeleteCascade(_ context.Context, taskID uint) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	stub.store.deleteTaskLocked(taskID)
	return nil
}

type instanceRepositoryStub struct{ store *memoryStore }

func (stub instanceRepositoryStub) FindByID(_ context.Context, instanceID uint) (models.TaskInstance, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	instance, ok := stub.store.instances[instanceID]
	if !ok {
		return models.TaskInstance{}, gorm.ErrRecordNotFound
	}
	return instance, nil
}

func (stub instanceRepositoryStub) ListByCompanyDay(_ context.Context, companyID uint, dayStart time.Time, dayEnd time.Time) ([]models.TaskInstance, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	instances := make([]models.TaskInstance, 0)
	for _, instance := range stub.store.instances {
		if instance.CompanyID != companyID || instance.Date.Before(dayStart) || !instance.Date.Before(dayEnd) {
			continue
		}
		instances = append(instances, stub.store.withTemplate(instance))
	}
	sort.Slice(instances, func(i, j int) bool { return instances[i].ID < instances[j].ID })
	return instances, nil
}

func (stub instanceRepositoryStub) ListGeneratableTasks(_ context.Context, companyID uint, listID *uint, dayStart time.Time, dayEnd time.Time) ([]models.Task, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	tasks := make([]models.Task, 0)
	for _, task := range stub.store.tasks {
		list, ok := stub.store.lists[task.TaskListID]
		if !ok || list.CompanyID != companyID || !task.IsActive {
			continue
		}
		if listID != nil && task.TaskListID != *listID {
			continue
		}
		if stub.store.hasInstanceLocked(task.ID, dayStart, dayEnd) {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (store *memoryStore) hasInstanceLocked(taskID uint, dayStart time.Time, dayEnd time.Time) bool {
	for _, instance := range store.instances {
		if instance.TaskID == taskID && !instance.Date.Before(dayStart) && instance.Date.Before(dayEnd) {
			return true
		}
	}
	return false
}

// CreateIgnoringConflicts mirrors the (task_id, date) unique index: duplicates are skipped.
func (stub instanceRepositoryStub) CreateIgnoringConflicts(_ context.Context, instances []models.TaskInstance) (int, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	created := 0
	for _, instance := range instances {
		if stub.store.hasInstanceLocked(instance.TaskID, instance.Date, instance.Date.Add(time.Nanosecond)) {
			continue
		}
		instance.ID = stub.store.allocateID()
		instance.CreatedAt = stub.store.tick()
		instance.UpdatedAt = instance.CreatedAt
		stub.store.instances[instance.ID] = instance
		created++
	}
	return created, nil
}

func (stub instanceRepositoryStub) UpdateFields(_ context.Context, instanceID uint, updates map[string]any) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	instance, ok := stub.store.instances[instanceID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "status":
			instance.Status = value.(models.Status)
		case "completed_at":
			instance.CompletedAt = value.(*time.Time)
		case "completed_by_user_id":
			instance.CompletedByUserID = value.(*uint)
		case "note":
			instance.Note = value.(*string)
		case "assigned_to_user_id":
			instance.AssignedToUserID = value.(*uint)
		}
	}
	instance.UpdatedAt = stub.store.tick()
	stub.store.instances[instanceID] = instance
	return nil
}

type noteRepositoryStub struct{ store *memoryStore }

func (stub noteRepositoryStub) FindByCompanyDay(_ context.Context, companyID uint, dayStart time.Time, dayEnd time.Time) (models.ManagerNote, bool, error) {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	for _, note := range stub.store.notes {
		if note.CompanyID == companyID && !note.Date.Before(dayStart) && note.Date.Before(dayEnd) {
			return note, true, nil
		}
	}
	return models.ManagerNote{}, false, nil
}

func (stub noteRepositoryStub) Upsert(_ context.Context, note *models.ManagerNote) error {
	stub.store.mu.Lock()
	defer stub.store.mu.Unlock()
	for id, existing := range stub.store.notes {
		if existing.CompanyID == note.CompanyID && existing.Date.Equal(note.Date) {
			existing.Content = note.Content
			existing.CreatedByUserID = note.CreatedByUserID
			existing.UpdatedAt = stub.store.tick()
			stub.store.notes[id] = existing
			*note = existing
			return nil
		}
	}
	note.ID = stub.store.allocateID()
	note.CreatedAt = stub.store.tick()
	note.UpdatedAt = note.CreatedAt
	stub.store.notes[note.ID] = *note
	return nil
}

type serviceFixture struct {
	store     *memoryStore
	events    *eventRecorder
	guard     *TenantGuard
	templates *TemplateService
	generator *GeneratorService
	instances *InstanceService
	notes     *NoteService
	days      *DayViewService
	imports   *ImportService
	team      *TeamService
	auth      *AuthService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	store := newMemoryStore()
	events := &eventRecorder{}
	users := userRepositoryStub{store: store}
	lists := listRepositoryStub{store: store}
	tasks := taskRepositoryStub{store: store}
	instances := instanceRepositoryStub{store: store}
	notes := noteRepositoryStub{store: store}

	guard := NewTenantGuard(lists, tasks, instances)
	noteService := NewNoteService(guard, notes, events)
	return &serviceFixture{
		store:     store,
		events:    events,
		guard:     guard,
		templates: NewTemplateService(guard, lists, tasks, events),
		generator: NewGeneratorService(guard, instances, events),
		instances: NewInstanceService(guard, instances, users, events),
		notes:     noteService,
		days:      NewDayViewService(guard, instances, noteService),
		imports:   NewImportService(guard, lists, tasks, events),
		team:      NewTeamService(users),
		auth:      NewAuthService(users),
	}
}

func (fixture *serviceFixture) addUser(t *testing.T, companyID uint, role models.Role, email string) *models.User {
	t.Helper()
	user := models.User{Name: "User " + email, Email: email, Role: role, CompanyID: companyID}
	if err := (userRepositoryStub{store: fixture.store}).Create(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func (fixture *serviceFixture) addList(t *testing.T, manager *models.User, name string) models.TaskList {
	t.Helper()
	list, err := fixture.templates.CreateTaskList(context.Background(), manager, TaskListInput{Name: name})
	if err != nil {
		t.Fatalf("CreateTaskList(%q) returned error: %v", name, err)
	}
	return list
}

func (fixture *serviceFixture) addTask(t *testing.T, manager *models.User, listID uint, title string, priority models.Priority) models.Task {
	t.Helper()
	task, err := fixture.templates.CreateTask(context.Background(), manager, listID, TaskInput{Title: title, DefaultPriority: priority})
	if err != nil {
		t.Fatalf("CreateTask(%q) returned error: %v", title, err)
	}
	return task
}

func (fixture *serviceFixture) instanceCount() int {
	fixture.store.mu.Lock()
	defer fixture.store.mu.Unlock()
	return len(fixture.store.instances)
}

func (fixture *serviceFixture) onlyInstance(t *testing.T) models.TaskInstance {
	t.Helper()
	fixture.store.mu.Lock()
	defer fixture.store.mu.Unlock()
	if len(fixture.store.instances) != 1 {
		t.Fatalf("expected exactly one instance, got %d", len(fixture.store.instances))
	}
	for _, instance := range fixture.store.instances {
		return instance
	}
	return models.TaskInstance{}
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("ParseDay(%q) returned error: %v", raw, err)
	}
	return day
}
