package models

import "time"

type Role string

const (
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

func (role Role) Valid() bool {
	return role == RoleManager || role == RoleMember
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;default:MEMBER" json:"role"`
	CompanyID    uint      `gorm:"not null;index" json:"companyId"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (user *User) IsManager() bool {
	return user != nil && user.Role == RoleManager
}
