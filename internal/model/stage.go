package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductionStage is an ordered step in the production pipeline
type ProductionStage struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	CompanyID       uint           `json:"company_id" gorm:"uniqueIndex:idx_stages_company_code;not null"`
	Name            string         `json:"name" gorm:"type:varchar(100);not null"`
	Code            string         `json:"code" gorm:"type:varchar(50);uniqueIndex:idx_stages_company_code;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	BackgroundColor string         `json:"background_color" gorm:"type:varchar(20)"`
	DisplayOrder    int            `json:"display_order" gorm:"default:0"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// DefaultStages returns the stage pipeline created for every new company
func DefaultStages(companyID uint) []ProductionStage {
	stages := []ProductionStage{
		{Name: "Throwing", Code: "throwing", BackgroundColor: "#FF6B6B", DisplayOrder: 1, Description: "Initial shaping of ceramic pieces"},
		{Name: "Trimming", Code: "trimming", BackgroundColor: "#4ECDC4", DisplayOrder: 2, Description: "Refining and trimming excess clay"},
		{Name: "Decoration", Code: "decoration", BackgroundColor: "#45B7D1", DisplayOrder: 3, Description: "Applying decorative elements"},
		{Name: "Drying", Code: "drying", BackgroundColor: "#96CEB4", DisplayOrder: 4, Description: "Air drying before firing"},
		{Name: "Bisquit Loading", Code: "bisquit_loading", BackgroundColor: "#FFEAA7", DisplayOrder: 5, Description: "Loading into bisquit kiln"},
		{Name: "Bisquit Firing", Code: "bisquit_firing", BackgroundColor: "#DDA0DD", DisplayOrder: 6, Description: "First firing process"},
		{Name: "Bisquit Exit", Code: "bisquit_exit", BackgroundColor: "#98D8C8", DisplayOrder: 7, Description: "Unloading from bisquit kiln"},
		{Name: "Sanding/Waxing", Code: "sanding_waxing", BackgroundColor: "#F7DC6F", DisplayOrder: 8, Description: "Surface preparation"},
		{Name: "Glazing", Code: "glazing", BackgroundColor: "#BB8FCE", DisplayOrder: 9, Description: "Applying glaze coating"},
		{Name: "High-Fire", Code: "high_fire", BackgroundColor: "#85C1E9", DisplayOrder: 10, Description: "Final firing at high temperature"},
		{Name: "Quality Control", Code: "quality_control", BackgroundColor: "#F8C471", DisplayOrder: 11, Description: "Final inspection and testing"},
	}
	for i := range stages {
		stages[i].CompanyID = companyID
		stages[i].IsActive = true
	}
	return stages
}
