package model

import "time"

// Appraisal types
const (
	AppraisalSuccess    = "success"
	AppraisalHumanError = "human_error"
)

// Severity levels shared by appraisals and alerts
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ValidSeverity reports whether s is a known severity level
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// PerformanceAppraisal is a logged evaluation event tied to an operator.
// Severity and the action fields only apply to human_error appraisals.
type PerformanceAppraisal struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	CompanyID          uint       `json:"company_id" gorm:"index;not null"`
	OperatorID         uint       `json:"operator_id" gorm:"index;not null"`
	ProductionRecordID *uint      `json:"production_record_id,omitempty" gorm:"index"`
	AppraisalType      string     `json:"appraisal_type" gorm:"type:varchar(20);not null"`
	Category           string     `json:"category" gorm:"type:varchar(100);not null"`
	Description        string     `json:"description" gorm:"type:text;not null"`
	Severity           string     `json:"severity" gorm:"type:varchar(20)"`
	Impact             string     `json:"impact" gorm:"type:text"`
	CorrectiveAction   string     `json:"corrective_action" gorm:"type:text"`
	PreventionAction   string     `json:"prevention_action" gorm:"type:text"`
	AppraisalDate      time.Time  `json:"appraisal_date" gorm:"not null"`
	RecordedBy         uint       `json:"recorded_by" gorm:"not null"`
	IsResolved         bool       `json:"is_resolved" gorm:"default:false"`
	ResolvedBy         *uint      `json:"resolved_by,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Operator Operator `json:"operator,omitempty" gorm:"foreignKey:OperatorID"`
	Recorder User     `json:"recorder,omitempty" gorm:"foreignKey:RecordedBy"`
	Resolver *User    `json:"resolver,omitempty" gorm:"foreignKey:ResolvedBy"`
}
