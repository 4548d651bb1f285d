package model

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item produced for clients
type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	CompanyID       uint           `json:"company_id" gorm:"uniqueIndex:idx_products_company_code;not null"`
	Code            string         `json:"code" gorm:"type:varchar(50);uniqueIndex:idx_products_company_code;not null"`
	Name            string         `json:"name" gorm:"type:varchar(255);not null"`
	Color           string         `json:"color" gorm:"type:varchar(50)"`
	Texture         string         `json:"texture" gorm:"type:varchar(50)"`
	Material        string         `json:"material" gorm:"type:varchar(100)"`
	Notes           string         `json:"notes" gorm:"type:text"`
	StandardTime    *float64       `json:"standard_time,omitempty"`
	DifficultyLevel int            `json:"difficulty_level" gorm:"default:3"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
