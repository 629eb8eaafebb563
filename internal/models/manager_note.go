package models

import "time"

type ManagerNote struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CompanyID       uint      `gorm:"not null;uniqueIndex:uidx_manager_notes_company_date" json:"companyId"`
	Date            time.Time `gorm:"not null;uniqueIndex:uidx_manager_notes_company_date" json:"date"`
	Content         string    `gorm:"not null" json:"content"`
	CreatedByUserID uint      `gorm:"not null" json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
