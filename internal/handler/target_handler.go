package handler

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

var monthFormat = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// TargetRequest defines the structure for monthly target creation/update requests
type TargetRequest struct {
	ProductID      uint   `json:"product_id"`
	Month          string `json:"month"`
	TargetQuantity int    `json:"target_quantity"`
	Notes          string `json:"notes"`
}

func (r *TargetRequest) validate() []string {
	var issues []string
	if r.ProductID == 0 {
		issues = append(issues, "product_id is required")
	}
	if r.Month == "" {
		issues = append(issues, "month is required")
	} else if !monthFormat.MatchString(r.Month) {
		issues = append(issues, "month must be in YYYY-MM format")
	}
	if r.TargetQuantity <= 0 {
		issues = append(issues, "target_quantity must be positive")
	}
	return issues
}

// ListTargets handles retrieving monthly targets with an optional month filter
func ListTargets(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("target", "list")

	query := database.GetDB().Where("company_id = ?", companyID(c))
	if month := c.QueryParam("month"); month != "" {
		query = query.Where("month = ?", month)
	}

	var targets []model.MonthlyTarget
	result := query.
		Preload("Product").
		Order("month DESC").
		Order("product_id ASC").
		Find(&targets)
	if result.Error != nil {
		log.Error("Failed to list monthly targets", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve monthly targets"})
	}

	return c.JSON(http.StatusOK, targets)
}

// CreateTarget handles creating a monthly target. One target per product
// and month.
func CreateTarget(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("target", "create")

	var req TargetRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	db := database.GetDB()

	var product model.Product
	if result := db.Where("company_id = ?", companyID(c)).First(&product, req.ProductID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	var count int64
	db.Model(&model.MonthlyTarget{}).
		Where("company_id = ? AND product_id = ? AND month = ?", companyID(c), req.ProductID, req.Month).
		Count(&count)
	if count > 0 {
		log.Warn("Monthly target already exists",
			zap.Uint("product_id", req.ProductID),
			zap.String("month", req.Month))
		return c.JSON(http.StatusConflict, echo.Map{"error": "target already exists for this product and month"})
	}

	target := model.MonthlyTarget{
		CompanyID:      companyID(c),
		ProductID:      req.ProductID,
		Month:          req.Month,
		TargetQuantity: req.TargetQuantity,
		Notes:          req.Notes,
	}

	if result := db.Create(&target); result.Error != nil {
		log.Error("Failed to create monthly target", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create monthly target"})
	}

	log.Info("Monthly target created",
		zap.Uint("target_id", target.ID),
		zap.Uint("product_id", target.ProductID),
		zap.String("month", target.Month))
	return c.JSON(http.StatusCreated, target)
}

// UpdateTarget handles updating an existing monthly target
func UpdateTarget(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("target", "update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid target ID"})
	}

	var req TargetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	db := database.GetDB()
	var target model.MonthlyTarget
	if result := db.Where("company_id = ?", companyID(c)).First(&target, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "monthly target not found"})
	}

	// Uniqueness check excluding self
	var count int64
	db.Model(&model.MonthlyTarget{}).
		Where("company_id = ? AND product_id = ? AND month = ? AND id != ?", companyID(c), req.ProductID, req.Month, id).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "target already exists for this product and month"})
	}

	target.ProductID = req.ProductID
	target.Month = req.Month
	target.TargetQuantity = req.TargetQuantity
	target.Notes = req.Notes

	if result := db.Save(&target); result.Error != nil {
		log.Error("Failed to update monthly target", zap.Uint("target_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update monthly target"})
	}

	return c.JSON(http.StatusOK, target)
}

// DeleteTarget handles deleting a monthly target
func DeleteTarget(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("target", "delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid target ID"})
	}

	db := database.GetDB()
	var target model.MonthlyTarget
	if result := db.Where("company_id = ?", companyID(c)).First(&target, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "monthly target not found"})
	}

	if result := db.Delete(&target); result.Error != nil {
		log.Error("Failed to delete monthly target", zap.Uint("target_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete monthly target"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "monthly target deleted successfully"})
}
