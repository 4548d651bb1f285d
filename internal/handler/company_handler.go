package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// CompanyRequest defines the structure for company creation/update requests
type CompanyRequest struct {
	Name     string                 `json:"name"`
	Code     string                 `json:"code"`
	Address  string                 `json:"address"`
	Phone    string                 `json:"phone"`
	Email    string                 `json:"email"`
	Settings *model.CompanySettings `json:"settings,omitempty"`
	IsActive *bool                  `json:"is_active,omitempty"`
}

// companyResponse carries per-company resource counts for the superadmin list
type companyResponse struct {
	model.Company
	UserCount     int64 `json:"user_count"`
	OperatorCount int64 `json:"operator_count"`
	ProductCount  int64 `json:"product_count"`
}

// ListCompanies handles retrieving all companies. Superadmin only.
func ListCompanies(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("company", "list")

	if !isSuperAdmin(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	db := database.GetDB()
	var companies []model.Company
	if result := db.Order("created_at DESC").Find(&companies); result.Error != nil {
		log.Error("Failed to list companies", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve companies"})
	}

	responses := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		resp := companyResponse{Company: company}
		db.Model(&model.User{}).Where("company_id = ?", company.ID).Count(&resp.UserCount)
		db.Model(&model.Operator{}).Where("company_id = ?", company.ID).Count(&resp.OperatorCount)
		db.Model(&model.Product{}).Where("company_id = ?", company.ID).Count(&resp.ProductCount)
		responses = append(responses, resp)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetCompany handles retrieving a single company. Superadmin only.
func GetCompany(c echo.Context) error {
	prometheus.RecordResourceOperation("company", "get")

	if !isSuperAdmin(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	var company model.Company
	if result := database.GetDB().First(&company, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	return c.JSON(http.StatusOK, company)
}

// CreateCompany creates a company with default settings and the default
// production stage pipeline in one transaction. Superadmin only.
func CreateCompany(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("company", "create")

	if !isSuperAdmin(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and code are required"})
	}

	code := strings.ToUpper(req.Code)

	db := database.GetDB()
	var count int64
	db.Model(&model.Company{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		log.Warn("Company code already exists", zap.String("code", code))
		return c.JSON(http.StatusConflict, echo.Map{"error": "company code already exists"})
	}

	company := model.Company{
		Name:     req.Name,
		Code:     code,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}

	settings := model.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if err := company.SetSettings(settings); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Company and its default stages are created atomically
	err := db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&company); result.Error != nil {
			return result.Error
		}
		stages := model.DefaultStages(company.ID)
		if result := tx.Create(&stages); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create company", zap.String("code", code), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create company"})
	}

	log.Info("Company created",
		zap.Uint("company_id", company.ID),
		zap.String("code", company.Code))
	return c.JSON(http.StatusCreated, company)
}

// UpdateCompany updates company master data and settings. Superadmin only.
func UpdateCompany(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("company", "update")

	if !isSuperAdmin(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	db := database.GetDB()
	var company model.Company
	if result := db.First(&company, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	company.Name = req.Name
	company.Address = req.Address
	company.Phone = req.Phone
	company.Email = req.Email
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	if req.Settings != nil {
		if err := company.SetSettings(*req.Settings); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	if result := db.Save(&company); result.Error != nil {
		log.Error("Failed to update company", zap.Uint("company_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update company"})
	}

	return c.JSON(http.StatusOK, company)
}
