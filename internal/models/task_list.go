package models

import "time"

type Frequency string

const (
	FrequencyOnce    Frequency = "ONCE"
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyUnknown Frequency = "UNKNOWN"
)

func (frequency Frequency) Valid() bool {
	switch frequency {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyUnknown:
		return true
	default:
		return false
	}
}

type TaskList struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      *string   `json:"description"`
	Location         *string   `json:"location"`
	GroupName        *string   `json:"groupName"`
	DefaultFrequency Frequency `gorm:"not null;default:UNKNOWN" json:"defaultFrequency"`
	CompanyID        uint      `gorm:"not null;index" json:"companyId"`
	CreatedByUserID  uint      `gorm:"not null" json:"createdByUserId"`
	Tasks            []Task    `gorm:"foreignKey:TaskListID" json:"tasks,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
