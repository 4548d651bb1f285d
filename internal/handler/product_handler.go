package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Color           string   `json:"color"`
	Texture         string   `json:"texture"`
	Material        string   `json:"material"`
	Notes           string   `json:"notes"`
	StandardTime    *float64 `json:"standard_time,omitempty"`
	DifficultyLevel int      `json:"difficulty_level"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

func (r *ProductRequest) validate() []string {
	var issues []string
	if r.Code == "" {
		issues = append(issues, "code is required")
	}
	if r.Name == "" {
		issues = append(issues, "name is required")
	}
	if r.StandardTime != nil && *r.StandardTime <= 0 {
		issues = append(issues, "standard_time must be positive")
	}
	if r.DifficultyLevel != 0 && (r.DifficultyLevel < 1 || r.DifficultyLevel > 5) {
		issues = append(issues, "difficulty_level must be between 1 and 5")
	}
	return issues
}

// ListProducts handles retrieving all products of the caller's company,
// active first then by code
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "list")

	var products []model.Product
	result := database.GetDB().
		Where("company_id = ?", companyID(c)).
		Order("is_active DESC").
		Order("code ASC").
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	prometheus.RecordResourceOperation("product", "get")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var product model.Product
	result := database.GetDB().Where("company_id = ?", companyID(c)).First(&product, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	db := database.GetDB()

	// Product codes are unique within a company
	var count int64
	db.Model(&model.Product{}).
		Where("company_id = ? AND code = ?", companyID(c), req.Code).
		Count(&count)
	if count > 0 {
		log.Warn("Product code already exists", zap.String("code", req.Code))
		return c.JSON(http.StatusConflict, echo.Map{"error": "product code already exists"})
	}

	product := model.Product{
		CompanyID:       companyID(c),
		Code:            req.Code,
		Name:            req.Name,
		Color:           req.Color,
		Texture:         req.Texture,
		Material:        req.Material,
		Notes:           req.Notes,
		StandardTime:    req.StandardTime,
		DifficultyLevel: req.DifficultyLevel,
		IsActive:        true,
	}
	if product.DifficultyLevel == 0 {
		product.DifficultyLevel = 3
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if result := db.Create(&product); result.Error != nil {
		log.Error("Failed to create product", zap.String("code", req.Code), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("code", product.Code))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if issues := req.validate(); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	db := database.GetDB()
	var product model.Product
	if result := db.Where("company_id = ?", companyID(c)).First(&product, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	// Uniqueness check excluding self
	if req.Code != product.Code {
		var count int64
		db.Model(&model.Product{}).
			Where("company_id = ? AND code = ? AND id != ?", companyID(c), req.Code, id).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "product code already exists"})
		}
	}

	product.Code = req.Code
	product.Name = req.Name
	product.Color = req.Color
	product.Texture = req.Texture
	product.Material = req.Material
	product.Notes = req.Notes
	product.StandardTime = req.StandardTime
	if req.DifficultyLevel != 0 {
		product.DifficultyLevel = req.DifficultyLevel
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if result := db.Save(&product); result.Error != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product. Blocked while order items, work
// plans or monthly targets reference the product.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	db := database.GetDB()
	var product model.Product
	if result := db.Where("company_id = ?", companyID(c)).First(&product, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	var orderItems int64
	db.Model(&model.ProductionOrderItem{}).Where("product_id = ?", id).Count(&orderItems)
	if orderItems > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete product with existing order items"})
	}

	var workPlans int64
	db.Model(&model.WorkPlan{}).Where("product_id = ?", id).Count(&workPlans)
	if workPlans > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete product with existing work plans"})
	}

	var targets int64
	db.Model(&model.MonthlyTarget{}).Where("product_id = ?", id).Count(&targets)
	if targets > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete product with existing monthly targets"})
	}

	if result := db.Delete(&product); result.Error != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
