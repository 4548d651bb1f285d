package model

import (
	"fmt"
	"time"
)

// ProductionRecord is the measured daily outcome of a work plan. At most one
// record exists per work plan and date.
type ProductionRecord struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	WorkPlanID        uint       `json:"work_plan_id" gorm:"uniqueIndex:idx_records_plan_date;not null"`
	RecordedDate      time.Time  `json:"recorded_date" gorm:"type:date;uniqueIndex:idx_records_plan_date;not null"`
	RecordedBy        uint       `json:"recorded_by" gorm:"index;not null"`
	CompletedQuantity int        `json:"completed_quantity" gorm:"not null"`
	GoodQuantity      int        `json:"good_quantity" gorm:"not null"`
	RejectQuantity    int        `json:"reject_quantity" gorm:"not null"`
	RejectReason      string     `json:"reject_reason" gorm:"type:text"`
	RejectStage       string     `json:"reject_stage" gorm:"type:varchar(50)"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	Notes             string     `json:"notes" gorm:"type:text"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	WorkPlan WorkPlan `json:"work_plan,omitempty" gorm:"foreignKey:WorkPlanID"`
	Recorder User     `json:"recorder,omitempty" gorm:"foreignKey:RecordedBy"`
}

// ValidateQuantities enforces the quantity invariants before persistence
func (r *ProductionRecord) ValidateQuantities() error {
	if r.CompletedQuantity < 0 || r.GoodQuantity < 0 || r.RejectQuantity < 0 {
		return fmt.Errorf("quantities cannot be negative")
	}
	if r.GoodQuantity+r.RejectQuantity != r.CompletedQuantity {
		return fmt.Errorf("good quantity plus reject quantity must equal completed quantity")
	}
	return nil
}
