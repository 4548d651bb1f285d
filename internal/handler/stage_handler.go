package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// StageRequest defines the structure for production stage creation requests
type StageRequest struct {
	Name            string `json:"name"`
	Code            string `json:"code"`
	Description     string `json:"description"`
	BackgroundColor string `json:"background_color"`
	DisplayOrder    int    `json:"display_order"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

// ListStages handles retrieving production stages in display order
func ListStages(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("stage", "list")

	query := database.GetDB().Where("company_id = ?", companyID(c))

	if isActive := c.QueryParam("isActive"); isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
		}
	}

	var stages []model.ProductionStage
	if result := query.Order("display_order ASC").Find(&stages); result.Error != nil {
		log.Error("Failed to list production stages", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve production stages"})
	}

	return c.JSON(http.StatusOK, stages)
}

// CreateStage handles creating a production stage beyond the default pipeline
func CreateStage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("stage", "create")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req StageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and code are required"})
	}

	db := database.GetDB()

	// Stage codes are unique within a company
	var count int64
	db.Model(&model.ProductionStage{}).
		Where("company_id = ? AND code = ?", companyID(c), req.Code).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "stage code already exists"})
	}

	stage := model.ProductionStage{
		CompanyID:       companyID(c),
		Name:            req.Name,
		Code:            req.Code,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        true,
	}
	if req.IsActive != nil {
		stage.IsActive = *req.IsActive
	}

	if result := db.Create(&stage); result.Error != nil {
		log.Error("Failed to create stage", zap.String("code", req.Code), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create stage"})
	}

	log.Info("Production stage created", zap.Uint("stage_id", stage.ID), zap.String("code", stage.Code))
	return c.JSON(http.StatusCreated, stage)
}
