package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// WorkPlanRequest defines the structure for work plan creation/update requests
type WorkPlanRequest struct {
	WeekStart             string `json:"week_start"`
	OperatorID            uint   `json:"operator_id"`
	ProductionOrderID     *uint  `json:"production_order_id,omitempty"`
	ProductionOrderItemID *uint  `json:"production_order_item_id,omitempty"`
	ProductID             uint   `json:"product_id"`
	ProductionStageID     uint   `json:"production_stage_id"`
	DecorationDetail      string `json:"decoration_detail"`
	TargetQuantity        int    `json:"target_quantity"`
	PlannedDate           string `json:"planned_date"`
	IsOvertime            bool   `json:"is_overtime"`
	Notes                 string `json:"notes"`
}

func (r *WorkPlanRequest) validate() []string {
	var issues []string
	if r.WeekStart == "" {
		issues = append(issues, "week_start is required")
	}
	if r.OperatorID == 0 {
		issues = append(issues, "operator_id is required")
	}
	if r.ProductID == 0 {
		issues = append(issues, "product_id is required")
	}
	if r.ProductionStageID == 0 {
		issues = append(issues, "production_stage_id is required")
	}
	if r.TargetQuantity <= 0 {
		issues = append(issues, "target_quantity must be positive")
	}
	if r.PlannedDate == "" {
		issues = append(issues, "planned_date is required")
	}
	return issues
}

// ListWorkPlans handles retrieving work plans with optional week, operator
// and date filters, ordered by planned date
func ListWorkPlans(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("workplan", "list")

	query := database.GetDB().Where("company_id = ?", companyID(c))

	if weekStart := c.QueryParam("weekStart"); weekStart != "" {
		query = query.Where("week_start = ?", weekStart)
	}
	if operatorID := c.QueryParam("operatorId"); operatorID != "" {
		query = query.Where("operator_id = ?", operatorID)
	}
	if date := c.QueryParam("date"); date != "" {
		query = query.Where("planned_date = ?", date)
	}

	var plans []model.WorkPlan
	result := query.
		Preload("Operator").
		Preload("Product").
		Preload("ProductionStage").
		Preload("ProductionOrder").
		Order("planned_date ASC").
		Find(&plans)
	if result.Error != nil {
		log.Error("Failed to list work plans", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve work plans"})
	}

	return c.JSON(http.StatusOK, plans)
}

// GetWorkPlan handles retrieving a single work plan by ID
func GetWorkPlan(c echo.Context) error {
	prometheus.RecordResourceOperation("workplan", "get")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid work plan ID"})
	}

	var plan model.WorkPlan
	result := database.GetDB().
		Where("company_id = ?", companyID(c)).
		Preload("Operator").
		Preload("Product").
		Preload("ProductionStage").
		Preload("ProductionOrder").
		First(&plan, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work plan not found"})
	}

	return c.JSON(http.StatusOK, plan)
}

// CreateWorkPlan handles creating a work plan. An operator can only be
// planned once per stage, date and week. Requires admin or superadmin role.
func CreateWorkPlan(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("workplan", "create")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req WorkPlanRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week start, expected YYYY-MM-DD"})
	}
	plannedDate, err := time.Parse("2006-01-02", req.PlannedDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid planned date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()

	var operator model.Operator
	if result := db.Where("company_id = ?", companyID(c)).First(&operator, req.OperatorID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
	}

	// One plan per operator, stage, date and week
	var count int64
	db.Model(&model.WorkPlan{}).
		Where("company_id = ? AND operator_id = ? AND production_stage_id = ? AND planned_date = ? AND week_start = ?",
			companyID(c), req.OperatorID, req.ProductionStageID, plannedDate, weekStart).
		Count(&count)
	if count > 0 {
		log.Warn("Duplicate work plan",
			zap.Uint("operator_id", req.OperatorID),
			zap.String("planned_date", req.PlannedDate))
		return c.JSON(http.StatusConflict, echo.Map{"error": "work plan already exists for this operator, stage and date"})
	}

	plan := model.WorkPlan{
		CompanyID:             companyID(c),
		WeekStart:             weekStart,
		OperatorID:            req.OperatorID,
		ProductionOrderID:     req.ProductionOrderID,
		ProductionOrderItemID: req.ProductionOrderItemID,
		ProductID:             req.ProductID,
		ProductionStageID:     req.ProductionStageID,
		DecorationDetail:      req.DecorationDetail,
		TargetQuantity:        req.TargetQuantity,
		PlannedDate:           plannedDate,
		IsOvertime:            req.IsOvertime,
		Notes:                 req.Notes,
	}

	if result := db.Create(&plan); result.Error != nil {
		log.Error("Failed to create work plan", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create work plan"})
	}

	log.Info("Work plan created",
		zap.Uint("work_plan_id", plan.ID),
		zap.Uint("operator_id", plan.OperatorID),
		zap.Time("planned_date", plan.PlannedDate))
	return c.JSON(http.StatusCreated, plan)
}

// UpdateWorkPlan handles updating an existing work plan. Requires admin or
// superadmin role.
func UpdateWorkPlan(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("workplan", "update")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid work plan ID"})
	}

	var req WorkPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week start, expected YYYY-MM-DD"})
	}
	plannedDate, err := time.Parse("2006-01-02", req.PlannedDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid planned date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()
	var plan model.WorkPlan
	if result := db.Where("company_id = ?", companyID(c)).First(&plan, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work plan not found"})
	}

	// Uniqueness check excluding self
	var count int64
	db.Model(&model.WorkPlan{}).
		Where("company_id = ? AND operator_id = ? AND production_stage_id = ? AND planned_date = ? AND week_start = ? AND id != ?",
			companyID(c), req.OperatorID, req.ProductionStageID, plannedDate, weekStart, id).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "work plan already exists for this operator, stage and date"})
	}

	plan.WeekStart = weekStart
	plan.OperatorID = req.OperatorID
	plan.ProductionOrderID = req.ProductionOrderID
	plan.ProductionOrderItemID = req.ProductionOrderItemID
	plan.ProductID = req.ProductID
	plan.ProductionStageID = req.ProductionStageID
	plan.DecorationDetail = req.DecorationDetail
	plan.TargetQuantity = req.TargetQuantity
	plan.PlannedDate = plannedDate
	plan.IsOvertime = req.IsOvertime
	plan.Notes = req.Notes

	if result := db.Save(&plan); result.Error != nil {
		log.Error("Failed to update work plan", zap.Uint("work_plan_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update work plan"})
	}

	return c.JSON(http.StatusOK, plan)
}

// DeleteWorkPlan handles deleting a work plan. Blocked while production
// records reference the plan. Requires admin or superadmin role.
func DeleteWorkPlan(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("workplan", "delete")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid work plan ID"})
	}

	db := database.GetDB()
	var plan model.WorkPlan
	if result := db.Where("company_id = ?", companyID(c)).First(&plan, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work plan not found"})
	}

	var records int64
	db.Model(&model.ProductionRecord{}).Where("work_plan_id = ?", id).Count(&records)
	if records > 0 {
		log.Warn("Work plan delete blocked by production records",
			zap.Uint("work_plan_id", id),
			zap.Int64("records", records))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete work plan with existing production records"})
	}

	if result := db.Delete(&plan); result.Error != nil {
		log.Error("Failed to delete work plan", zap.Uint("work_plan_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete work plan"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "work plan deleted successfully"})
}
