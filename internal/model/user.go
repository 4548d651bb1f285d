package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "admin"
	RoleInputData  = "inputdata"
	RoleSuperAdmin = "superadmin"
)

// User represents an authentication principal belonging to one company
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CompanyID    uint           `json:"company_id" gorm:"index;not null"`
	Username     string         `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"type:varchar(100)"`
	PasswordHash string         `json:"-" gorm:"type:varchar(255);not null"`
	Role         string         `json:"role" gorm:"type:varchar(20);not null;default:'inputdata'"`
	FullName     string         `json:"full_name" gorm:"type:varchar(255)"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}

// IsManager reports whether the role may mutate orders and work plans
func IsManager(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
