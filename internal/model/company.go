package model

import (
	"time"

	"gorm.io/gorm"
)

// Company is the tenant boundary. Every business entity hangs off a company
// and all queries are scoped by its id.
type Company struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Code      string         `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	Address   string         `json:"address" gorm:"type:text"`
	Phone     string         `json:"phone" gorm:"type:varchar(50)"`
	Email     string         `json:"email" gorm:"type:varchar(100)"`
	Settings  string         `json:"settings" gorm:"type:jsonb"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
