package model

import "time"

// MonthlyTarget is a per-product monthly quantity goal, unique per
// (company, product, month). Month is stored as YYYY-MM.
type MonthlyTarget struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CompanyID      uint      `json:"company_id" gorm:"uniqueIndex:idx_targets_company_product_month;not null"`
	ProductID      uint      `json:"product_id" gorm:"uniqueIndex:idx_targets_company_product_month;not null"`
	Month          string    `json:"month" gorm:"type:varchar(7);uniqueIndex:idx_targets_company_product_month;not null"`
	TargetQuantity int       `json:"target_quantity" gorm:"not null"`
	Notes          string    `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
