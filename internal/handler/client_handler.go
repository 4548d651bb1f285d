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

// ClientRequest defines the structure for client creation/update requests
type ClientRequest struct {
	Name          string `json:"name"`
	Region        string `json:"region"`
	Department    string `json:"department"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// ListClients handles retrieving all clients of the caller's company,
// active first then alphabetical
func ListClients(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("client", "list")

	var clients []model.Client
	result := database.GetDB().
		Where("company_id = ?", companyID(c)).
		Order("is_active DESC").
		Order("name ASC").
		Find(&clients)
	if result.Error != nil {
		log.Error("Failed to list clients", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve clients"})
	}

	return c.JSON(http.StatusOK, clients)
}

// GetClient handles retrieving a single client by ID
func GetClient(c echo.Context) error {
	prometheus.RecordResourceOperation("client", "get")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	var client model.Client
	result := database.GetDB().Where("company_id = ?", companyID(c)).First(&client, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	return c.JSON(http.StatusOK, client)
}

// CreateClient handles creating a new client
func CreateClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("client", "create")

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": []string{"name is required"}})
	}

	client := model.Client{
		CompanyID:     companyID(c),
		Name:          req.Name,
		Region:        req.Region,
		Department:    req.Department,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsActive:      true,
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if result := database.GetDB().Create(&client); result.Error != nil {
		log.Error("Failed to create client", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create client"})
	}

	log.Info("Client created", zap.Uint("client_id", client.ID), zap.String("name", client.Name))
	return c.JSON(http.StatusCreated, client)
}

// UpdateClient handles updating an existing client
func UpdateClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("client", "update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": []string{"name is required"}})
	}

	db := database.GetDB()
	var client model.Client
	if result := db.Where("company_id = ?", companyID(c)).First(&client, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	client.Name = req.Name
	client.Region = req.Region
	client.Department = req.Department
	client.ContactPerson = req.ContactPerson
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if result := db.Save(&client); result.Error != nil {
		log.Error("Failed to update client", zap.Uint("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update client"})
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client. Blocked while production orders
// reference the client.
func DeleteClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("client", "delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	db := database.GetDB()
	var client model.Client
	if result := db.Where("company_id = ?", companyID(c)).First(&client, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	var orders int64
	db.Model(&model.ProductionOrder{}).Where("client_id = ?", id).Count(&orders)
	if orders > 0 {
		log.Warn("Client delete blocked by production orders",
			zap.Uint("client_id", id),
			zap.Int64("orders", orders))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete client with existing production orders"})
	}

	if result := db.Delete(&client); result.Error != nil {
		log.Error("Failed to delete client", zap.Uint("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete client"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "client deleted successfully"})
}
