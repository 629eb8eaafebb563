package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

func (priority Priority) Valid() bool {
	return priority == PriorityLow || priority == PriorityNormal || priority == PriorityHigh
}

// Rank orders priorities for display: HIGH first, LOW last.
func (priority Priority) Rank() int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityNormal:
		return 1
	default:
		return 2
	}
}

// PriorityDisplayOrder is the fixed bucket order of the day view.
var PriorityDisplayOrder = []Priority{PriorityHigh, PriorityNormal, PriorityLow}

// Task is a reusable template. It is never tied to a specific day.
type Task struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TaskListID       uint      `gorm:"not null;index" json:"taskListId"`
	TaskList         *TaskList `gorm:"foreignKey:TaskListID" json:"-"`
	Title            string    `gorm:"not null" json:"title"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category"`
	DefaultFrequency Frequency `gorm:"not null;default:DAILY" json:"defaultFrequency"`
	DefaultPriority  Priority  `gorm:"not null;default:NORMAL" json:"defaultPriority"`
	SortOrder        int       `gorm:"not null;default:0" json:"sortOrder"`
	IsActive         bool      `gorm:"not null" json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
