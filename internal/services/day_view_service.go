package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/taskflow/internal/models"
)

type DayInstanceRepository interface {
	ListByCompanyDay(ctx context.Context, companyID uint, dayStart time.Time, dayEnd time.Time) ([]models.TaskInstance, error)
}

type DayStats struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Open    int `json:"open"`
	Skipped int `json:"skipped"`
}

type PriorityBucket struct {
	Priority models.Priority       `json:"priority"`
	Items    []models.TaskInstance `json:"items"`
}

type TaskGroup struct {
	ListID     uint             `json:"listId"`
	ListName   string           `json:"listName"`
	Priorities []PriorityBucket `json:"priorities"`
}

// DayView is the read model of one company's calendar day. AllTasks and Groups are not redacted
// by role; callers decide who may see them.
type DayView struct {
	Date     time.Time             `json:"date"`
	MyTasks  []models.TaskInstance `json:"myTasks"`
	AllTasks []models.TaskInstance `json:"allTasks"`
	MyGroups []TaskGroup           `json:"myGroups"`
	Groups   []TaskGroup           `json:"groups"`
	Stats    DayStats              `json:"stats"`
	Note     *models.ManagerNote   `json:"note"`
}

type DayViewService struct {
	guard     *TenantGuard
	instances DayInstanceRepository
	notes     *NoteService
}

func NewDayViewService(guard *TenantGuard, instances DayInstanceRepository, notes *NoteService) *DayViewService {
	return &DayViewService{
		guard:     guard,
		instances: instances,
		notes:     notes,
	}
}

func (service *DayViewService) DayView(ctx context.Context, user *models.User, companyID uint, date time.Time) (DayView, error) {
	if err := service.guard.AuthorizeCompany(user, companyID); err != nil {
		return DayView{}, err
	}

	dayStart, dayEnd := DayRange(date)
	instances, err := service.instances.ListByCompanyDay(ctx, companyID, dayStart, dayEnd)
	if err != nil {
		return DayView{}, fmt.Errorf("load task instances: %w", err)
	}
	SortInstancesForDisplay(instances)

	mine := make([]models.TaskInstance, 0)
	for _, instance := range instances {
		if instance.AssignedToUserID != nil && *instance.AssignedToUserID == user.ID {
			mine = append(mine, instance)
		}
	}

	view := DayView{
		Date:     dayStart,
		MyTasks:  mine,
		AllTasks: instances,
		MyGroups: GroupInstances(mine),
		Groups:   GroupInstances(instances),
		Stats:    BuildDayStats(instances),
	}
	if service.notes != nil {
		note, err := service.notes.findNote(ctx, companyID, dayStart)
		if err != nil {
			return DayView{}, err
		}
		view.Note = note
	}
	return view, nil
}

func BuildDayStats(instances []models.TaskInstance) DayStats {
	stats := DayStats{Total: len(instances)}
	for _, instance := range instances {
		switch instance.Status {
		case models.StatusDone:
			stats.Done++
		case models.StatusSkipped:
			stats.Skipped++
		default:
			stats.Open++
		}
	}
	return stats
}

// SortInstancesForDisplay orders by priority (HIGH first), template sort order, then creation.
func SortInstancesForDisplay(instances []models.TaskInstance) {
	sort.SliceStable(instances, func(i, j int) bool {
		left, right := templateOf(instances[i]), templateOf(instances[j])
		if rankOf(left) != rankOf(right) {
			return rankOf(left) < rankOf(right)
		}
		return createdBefore(instances[i], instances[j], left.SortOrder, right.SortOrder)
	})
}

// GroupInstances partitions by list in order of first appearance, then into HIGH, NORMAL, LOW
// buckets. Empty buckets are omitted.
func GroupInstances(instances []models.TaskInstance) []TaskGroup {
	type listBuckets struct {
		name    string
		buckets map[models.Priority][]models.TaskInstance
	}

	order := make([]uint, 0)
	byList := make(map[uint]*listBuckets)
	for _, instance := range instances {
		task := templateOf(instance)
		entry, ok := byList[task.TaskListID]
		if !ok {
			name := ""
			if task.TaskList != nil {
				name = task.TaskList.Name
			}
			entry = &listBuckets{name: name, buckets: make(map[models.Priority][]models.TaskInstance)}
			byList[task.TaskListID] = entry
			order = append(order, task.TaskListID)
		}
		priority := bucketPriority(task)
		entry.buckets[priority] = append(entry.buckets[priority], instance)
	}

	groups := make([]TaskGroup, 0, len(order))
	for _, listID := range order {
		entry := byList[listID]
		group := TaskGroup{ListID: listID, ListName: entry.name, Priorities: make([]PriorityBucket, 0, len(models.PriorityDisplayOrder))}
		for _, priority := range models.PriorityDisplayOrder {
			items := entry.buckets[priority]
			if len(items) == 0 {
				continue
			}
			sort.SliceStable(items, func(i, j int) bool {
				return createdBefore(items[i], items[j], templateOf(items[i]).SortOrder, templateOf(items[j]).SortOrder)
			})
			group.Priorities = append(group.Priorities, PriorityBucket{Priority: priority, Items: items})
		}
		groups = append(groups, group)
	}
	return groups
}

func createdBefore(left models.TaskInstance, right models.TaskInstance, leftOrder int, rightOrder int) bool {
	if leftOrder != rightOrder {
		return leftOrder < rightOrder
	}
	if !left.CreatedAt.Equal(right.CreatedAt) {
		return left.CreatedAt.Before(right.CreatedAt)
	}
	return left.ID < right.ID
}

func templateOf(instance models.TaskInstance) models.Task {
	if instance.Task == nil {
		return models.Task{}
	}
	return *instance.Task
}

func bucketPriority(task models.Task) models.Priority {
	if task.DefaultPriority.Valid() {
		return task.DefaultPriority
	}
	return models.PriorityNormal
}

func rankOf(task models.Task) int {
	return bucketPriority(task).Rank()
}
