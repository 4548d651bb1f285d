package model

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer company that places production orders
type Client struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	CompanyID     uint           `json:"company_id" gorm:"index;not null"`
	Name          string         `json:"name" gorm:"type:varchar(255);not null"`
	Region        string         `json:"region" gorm:"type:varchar(100)"`
	Department    string         `json:"department" gorm:"type:varchar(100)"`
	ContactPerson string         `json:"contact_person" gorm:"type:varchar(255)"`
	Phone         string         `json:"phone" gorm:"type:varchar(50)"`
	Email         string         `json:"email" gorm:"type:varchar(100)"`
	Address       string         `json:"address" gorm:"type:text"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
