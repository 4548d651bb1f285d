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

// OperatorRequest defines the structure for operator creation/update requests
type OperatorRequest struct {
	EmployeeID string   `json:"employee_id"`
	FullName   string   `json:"full_name"`
	Skills     []string `json:"skills"`
	HireDate   string   `json:"hire_date"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

func (r *OperatorRequest) validate() []string {
	var issues []string
	if r.EmployeeID == "" {
		issues = append(issues, "employee_id is required")
	}
	if r.FullName == "" {
		issues = append(issues, "full_name is required")
	}
	return issues
}

// ListOperators handles retrieving all operators of the caller's company,
// active first then alphabetical
func ListOperators(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("operator", "list")

	var operators []model.Operator
	result := database.GetDB().
		Where("company_id = ?", companyID(c)).
		Order("is_active DESC").
		Order("full_name ASC").
		Find(&operators)
	if result.Error != nil {
		log.Error("Failed to list operators", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve operators"})
	}

	return c.JSON(http.StatusOK, operators)
}

// GetOperator handles retrieving a single operator by ID
func GetOperator(c echo.Context) error {
	prometheus.RecordResourceOperation("operator", "get")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operator ID"})
	}

	var operator model.Operator
	result := database.GetDB().Where("company_id = ?", companyID(c)).First(&operator, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
	}

	return c.JSON(http.StatusOK, operator)
}

// CreateOperator handles creating a new operator
func CreateOperator(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("operator", "create")

	var req OperatorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	db := database.GetDB()

	// Employee IDs are unique within a company
	var count int64
	db.Model(&model.Operator{}).
		Where("company_id = ? AND employee_id = ?", companyID(c), req.EmployeeID).
		Count(&count)
	if count > 0 {
		log.Warn("Employee ID already exists", zap.String("employee_id", req.EmployeeID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "employee ID already exists"})
	}

	operator := model.Operator{
		CompanyID:  companyID(c),
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		IsActive:   true,
	}
	if req.IsActive != nil {
		operator.IsActive = *req.IsActive
	}
	if err := operator.SetSkills(req.Skills); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid skills"})
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hire date, expected YYYY-MM-DD"})
		}
		operator.HireDate = &hireDate
	}

	if result := db.Create(&operator); result.Error != nil {
		log.Error("Failed to create operator",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create operator"})
	}

	log.Info("Operator created",
		zap.Uint("operator_id", operator.ID),
		zap.String("employee_id", operator.EmployeeID))
	return c.JSON(http.StatusCreated, operator)
}

// UpdateOperator handles updating an existing operator
func UpdateOperator(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("operator", "update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operator ID"})
	}

	var req OperatorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	db := database.GetDB()
	var operator model.Operator
	if result := db.Where("company_id = ?", companyID(c)).First(&operator, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
	}

	// Uniqueness check excluding self
	var count int64
	db.Model(&model.Operator{}).
		Where("company_id = ? AND employee_id = ? AND id != ?", companyID(c), req.EmployeeID, id).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "employee ID already exists"})
	}

	operator.EmployeeID = req.EmployeeID
	operator.FullName = req.FullName
	if err := operator.SetSkills(req.Skills); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid skills"})
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hire date, expected YYYY-MM-DD"})
		}
		operator.HireDate = &hireDate
	} else {
		operator.HireDate = nil
	}
	if req.IsActive != nil {
		operator.IsActive = *req.IsActive
	}

	if result := db.Save(&operator); result.Error != nil {
		log.Error("Failed to update operator", zap.Uint("operator_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update operator"})
	}

	return c.JSON(http.StatusOK, operator)
}

// DeleteOperator handles deleting an operator. Blocked while work plans
// reference the operator.
func DeleteOperator(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("operator", "delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operator ID"})
	}

	db := database.GetDB()
	var operator model.Operator
	if result := db.Where("company_id = ?", companyID(c)).First(&operator, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
	}

	var workPlans int64
	db.Model(&model.WorkPlan{}).Where("operator_id = ?", id).Count(&workPlans)
	if workPlans > 0 {
		log.Warn("Operator delete blocked by work plans",
			zap.Uint("operator_id", id),
			zap.Int64("work_plans", workPlans))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete operator with existing work plans"})
	}

	if result := db.Delete(&operator); result.Error != nil {
		log.Error("Failed to delete operator", zap.Uint("operator_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete operator"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "operator deleted successfully"})
}
