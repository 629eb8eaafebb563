package models

import "time"

// Company is the tenant root. Every other record is scoped to one company.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
