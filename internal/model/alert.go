package model

import "time"

// Alert types raised by the system
const (
	AlertTypeRejectLimitExceeded = "reject_limit_exceeded"
)

// Alert is a system-raised notice scoped to a company. Resolution is one-way.
type Alert struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	CompanyID         uint       `json:"company_id" gorm:"index;not null"`
	AlertType         string     `json:"alert_type" gorm:"type:varchar(50);not null"`
	Severity          string     `json:"severity" gorm:"type:varchar(20);default:'medium'"`
	Title             string     `json:"title" gorm:"type:varchar(255);not null"`
	Message           string     `json:"message" gorm:"type:text;not null"`
	RelatedRecordID   *uint      `json:"related_record_id,omitempty"`
	RelatedRecordType string     `json:"related_record_type" gorm:"type:varchar(50)"`
	IsResolved        bool       `json:"is_resolved" gorm:"default:false"`
	ResolvedBy        *uint      `json:"resolved_by,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Resolver *User `json:"resolver,omitempty" gorm:"foreignKey:ResolvedBy"`
}
