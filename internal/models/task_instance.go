package models

import "time"

type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusDone    Status = "DONE"
	StatusSkipped Status = "SKIPPED"
)

func (status Status) Valid() bool {
	return status == StatusOpen || status == StatusDone || status == StatusSkipped
}

// TaskInstance is one dated occurrence of a Task. Date is always midnight UTC and
// (TaskID, Date) is unique.
type TaskInstance struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	TaskID            uint       `gorm:"not null;uniqueIndex:uidx_task_instances_task_date" json:"taskId"`
	Task              *Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	CompanyID         uint       `gorm:"not null;index" json:"companyId"`
	Date              time.Time  `gorm:"not null;uniqueIndex:uidx_task_instances_task_date" json:"date"`
	Status            Status     `gorm:"not null;default:OPEN" json:"status"`
	Note              *string    `json:"note"`
	AssignedToUserID  *uint      `json:"assignedToUserId"`
	AssignedTo        *User      `gorm:"foreignKey:AssignedToUserID" json:"assignedTo,omitempty"`
	CompletedAt       *time.Time `json:"completedAt"`
	CompletedByUserID *uint      `json:"completedByUserId"`
	CompletedBy       *User      `gorm:"foreignKey:CompletedByUserID" json:"completedBy,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
