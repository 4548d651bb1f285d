package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Operator is a worker who can be assigned to work plans
type Operator struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CompanyID  uint           `json:"company_id" gorm:"uniqueIndex:idx_operators_company_employee;not null"`
	EmployeeID string         `json:"employee_id" gorm:"type:varchar(50);uniqueIndex:idx_operators_company_employee;not null"`
	FullName   string         `json:"full_name" gorm:"type:varchar(255);not null"`
	Skills     string         `json:"skills" gorm:"type:jsonb"`
	HireDate   *time.Time     `json:"hire_date,omitempty"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// SkillList decodes the skills column into a list of stage codes
func (o *Operator) SkillList() []string {
	if o.Skills == "" {
		return nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(o.Skills), &skills); err != nil {
		return nil
	}
	return skills
}

// SetSkills encodes a list of stage codes into the skills column
func (o *Operator) SetSkills(skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	o.Skills = string(raw)
	return nil
}
