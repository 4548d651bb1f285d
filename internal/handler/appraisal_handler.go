package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

const defaultAppraisalLimit = 50

// AppraisalRequest defines the structure for appraisal creation/update requests
type AppraisalRequest struct {
	OperatorID         uint   `json:"operator_id"`
	ProductionRecordID *uint  `json:"production_record_id,omitempty"`
	AppraisalType      string `json:"appraisal_type"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	Severity           string `json:"severity"`
	Impact             string `json:"impact"`
	CorrectiveAction   string `json:"corrective_action"`
	PreventionAction   string `json:"prevention_action"`
	AppraisalDate      string `json:"appraisal_date"`
	IsResolved         *bool  `json:"is_resolved,omitempty"`
}

func (r *AppraisalRequest) validate() []string {
	var issues []string
	if r.OperatorID == 0 {
		issues = append(issues, "operator_id is required")
	}
	if r.AppraisalType != model.AppraisalSuccess && r.AppraisalType != model.AppraisalHumanError {
		issues = append(issues, "appraisal_type must be success or human_error")
	}
	if r.Category == "" {
		issues = append(issues, "category is required")
	}
	if r.Description == "" {
		issues = append(issues, "description is required")
	}
	if r.Severity != "" && !model.ValidSeverity(r.Severity) {
		issues = append(issues, "severity must be low, medium, high or critical")
	}
	if r.AppraisalDate == "" {
		issues = append(issues, "appraisal_date is required")
	}
	return issues
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListAppraisals handles retrieving performance appraisals, paginated and
// newest first, with optional operator and type filters
func ListAppraisals(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("appraisal", "list")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultAppraisalLimit
	}

	db := database.GetDB()
	query := db.Model(&model.PerformanceAppraisal{}).Where("company_id = ?", companyID(c))

	if operatorID := c.QueryParam("operatorId"); operatorID != "" {
		query = query.Where("operator_id = ?", operatorID)
	}
	if appraisalType := c.QueryParam("appraisalType"); appraisalType != "" {
		query = query.Where("appraisal_type = ?", appraisalType)
	}

	var total int64
	if result := query.Session(&gorm.Session{}).Count(&total); result.Error != nil {
		log.Error("Failed to count appraisals", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve appraisals"})
	}

	var appraisals []model.PerformanceAppraisal
	result := query.
		Preload("Operator").
		Preload("Recorder").
		Order("appraisal_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appraisals)
	if result.Error != nil {
		log.Error("Failed to list appraisals", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve appraisals"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": appraisals,
		"pagination": paginationMeta{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetAppraisal handles retrieving a single appraisal by ID
func GetAppraisal(c echo.Context) error {
	prometheus.RecordResourceOperation("appraisal", "get")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appraisal ID"})
	}

	var appraisal model.PerformanceAppraisal
	result := database.GetDB().
		Where("company_id = ?", companyID(c)).
		Preload("Operator").
		Preload("Recorder").
		Preload("Resolver").
		First(&appraisal, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appraisal not found"})
	}

	return c.JSON(http.StatusOK, appraisal)
}

// CreateAppraisal handles logging an appraisal event for an operator. A
// linked production record must belong to that operator.
func CreateAppraisal(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("appraisal", "create")

	var req AppraisalRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	appraisalDate, err := time.Parse("2006-01-02", req.AppraisalDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appraisal date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()

	var operator model.Operator
	if result := db.Where("company_id = ?", companyID(c)).First(&operator, req.OperatorID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
	}

	if req.ProductionRecordID != nil {
		var record model.ProductionRecord
		result := db.
			Joins("JOIN work_plans ON work_plans.id = production_records.work_plan_id").
			Where("production_records.id = ? AND work_plans.operator_id = ?", *req.ProductionRecordID, req.OperatorID).
			First(&record)
		if result.Error != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "production record does not belong to this operator"})
		}
	}

	appraisal := model.PerformanceAppraisal{
		CompanyID:          companyID(c),
		OperatorID:         req.OperatorID,
		ProductionRecordID: req.ProductionRecordID,
		AppraisalType:      req.AppraisalType,
		Category:           req.Category,
		Description:        req.Description,
		Severity:           req.Severity,
		Impact:             req.Impact,
		CorrectiveAction:   req.CorrectiveAction,
		PreventionAction:   req.PreventionAction,
		AppraisalDate:      appraisalDate,
		RecordedBy:         userID(c),
	}

	if result := db.Create(&appraisal); result.Error != nil {
		log.Error("Failed to create appraisal",
			zap.Uint("operator_id", req.OperatorID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create appraisal"})
	}

	log.Info("Appraisal created",
		zap.Uint("appraisal_id", appraisal.ID),
		zap.Uint("operator_id", appraisal.OperatorID),
		zap.String("type", appraisal.AppraisalType))
	return c.JSON(http.StatusCreated, appraisal)
}

// UpdateAppraisal handles updating an appraisal. Resolving stamps the
// resolver and timestamp, un-resolving clears both.
func UpdateAppraisal(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("appraisal", "update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appraisal ID"})
	}

	var req AppraisalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	appraisalDate, err := time.Parse("2006-01-02", req.AppraisalDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appraisal date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()
	var appraisal model.PerformanceAppraisal
	if result := db.Where("company_id = ?", companyID(c)).First(&appraisal, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appraisal not found"})
	}

	appraisal.AppraisalType = req.AppraisalType
	appraisal.Category = req.Category
	appraisal.Description = req.Description
	appraisal.Severity = req.Severity
	appraisal.Impact = req.Impact
	appraisal.CorrectiveAction = req.CorrectiveAction
	appraisal.PreventionAction = req.PreventionAction
	appraisal.AppraisalDate = appraisalDate

	if req.IsResolved != nil && *req.IsResolved != appraisal.IsResolved {
		if *req.IsResolved {
			resolver := userID(c)
			now := time.Now()
			appraisal.IsResolved = true
			appraisal.ResolvedBy = &resolver
			appraisal.ResolvedAt = &now
		} else {
			appraisal.IsResolved = false
			appraisal.ResolvedBy = nil
			appraisal.ResolvedAt = nil
		}
	}

	if result := db.Save(&appraisal); result.Error != nil {
		log.Error("Failed to update appraisal", zap.Uint("appraisal_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update appraisal"})
	}

	return c.JSON(http.StatusOK, appraisal)
}

// DeleteAppraisal handles removing an appraisal
func DeleteAppraisal(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("appraisal", "delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appraisal ID"})
	}

	db := database.GetDB()
	var appraisal model.PerformanceAppraisal
	if result := db.Where("company_id = ?", companyID(c)).First(&appraisal, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appraisal not found"})
	}

	if result := db.Delete(&appraisal); result.Error != nil {
		log.Error("Failed to delete appraisal", zap.Uint("appraisal_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete appraisal"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "appraisal deleted successfully"})
}
