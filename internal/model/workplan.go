package model

import (
	"time"

	"gorm.io/gorm"
)

// WorkPlan assigns an operator to produce a target quantity of a product at
// a stage on a specific date within a week. Optionally linked to a production
// order item.
type WorkPlan struct {
	ID                    uint           `json:"id" gorm:"primaryKey"`
	CompanyID             uint           `json:"company_id" gorm:"index;not null"`
	WeekStart             time.Time      `json:"week_start" gorm:"not null"`
	OperatorID            uint           `json:"operator_id" gorm:"index;not null"`
	ProductionOrderID     *uint          `json:"production_order_id,omitempty" gorm:"index"`
	ProductionOrderItemID *uint          `json:"production_order_item_id,omitempty"`
	ProductID             uint           `json:"product_id" gorm:"index;not null"`
	ProductionStageID     uint           `json:"production_stage_id" gorm:"index;not null"`
	DecorationDetail      string         `json:"decoration_detail" gorm:"type:text"`
	TargetQuantity        int            `json:"target_quantity" gorm:"not null"`
	PlannedDate           time.Time      `json:"planned_date" gorm:"not null"`
	IsOvertime            bool           `json:"is_overtime" gorm:"default:false"`
	Notes                 string         `json:"notes" gorm:"type:text"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `json:"-" gorm:"index"`

	Operator        Operator         `json:"operator,omitempty" gorm:"foreignKey:OperatorID"`
	Product         Product          `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ProductionStage ProductionStage  `json:"production_stage,omitempty" gorm:"foreignKey:ProductionStageID"`
	ProductionOrder *ProductionOrder `json:"production_order,omitempty" gorm:"foreignKey:ProductionOrderID"`
}
