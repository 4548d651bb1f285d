package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// OrderItemRequest is one product line of an order request. QtyForming is
// derived from QtyOrdered when absent.
type OrderItemRequest struct {
	ProductID  uint   `json:"product_id"`
	QtyOrdered int    `json:"qty_ordered"`
	QtyForming *int   `json:"qty_forming,omitempty"`
	Notes      string `json:"notes"`
}

// OrderRequest defines the structure for production order creation/update requests
type OrderRequest struct {
	ClientID     uint               `json:"client_id"`
	PONo         string             `json:"po_no"`
	DeliveryDate string             `json:"delivery_date"`
	Priority     int                `json:"priority"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes"`
	Items        []OrderItemRequest `json:"items"`
}

func (r *OrderRequest) validateItems() []string {
	var issues []string
	if len(r.Items) == 0 {
		issues = append(issues, "at least one order item is required")
	}
	for i, item := range r.Items {
		if item.ProductID == 0 {
			issues = append(issues, fmt.Sprintf("item %d: product_id is required", i+1))
		}
		if item.QtyOrdered <= 0 {
			issues = append(issues, fmt.Sprintf("item %d: qty_ordered must be positive", i+1))
		}
		if item.QtyForming != nil && *item.QtyForming <= 0 {
			issues = append(issues, fmt.Sprintf("item %d: qty_forming must be positive", i+1))
		}
	}
	return issues
}

// buildItems materializes order items, deriving the forming quantity where
// it was not supplied
func (r *OrderRequest) buildItems(orderID uint) []model.ProductionOrderItem {
	items := make([]model.ProductionOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		forming := model.FormingQuantity(item.QtyOrdered)
		if item.QtyForming != nil {
			forming = *item.QtyForming
		}
		items = append(items, model.ProductionOrderItem{
			ProductionOrderID: orderID,
			ProductID:         item.ProductID,
			QtyOrdered:        item.QtyOrdered,
			QtyForming:        forming,
			Notes:             item.Notes,
		})
	}
	return items
}

// orderResponse carries the work-plan count used by the admin order list
type orderResponse struct {
	model.ProductionOrder
	WorkPlanCount int64 `json:"work_plan_count"`
}

// ListOrders handles retrieving production orders with optional status and
// client filters, ordered by priority, delivery date and creation time
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("order", "list")

	db := database.GetDB()
	query := db.Where("company_id = ?", companyID(c))

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID := c.QueryParam("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var orders []model.ProductionOrder
	result := query.
		Preload("Client").
		Preload("Items").
		Preload("Items.Product").
		Order("priority DESC").
		Order("delivery_date ASC").
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list production orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve production orders"})
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp := orderResponse{ProductionOrder: order}
		db.Model(&model.WorkPlan{}).Where("production_order_id = ?", order.ID).Count(&resp.WorkPlanCount)
		responses = append(responses, resp)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetOrder handles retrieving a single production order with its items
func GetOrder(c echo.Context) error {
	prometheus.RecordResourceOperation("order", "get")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	var order model.ProductionOrder
	result := database.GetDB().
		Where("company_id = ?", companyID(c)).
		Preload("Client").
		Preload("Items").
		Preload("Items.Product").
		First(&order, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "production order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// CreateOrder creates a production order and its items in one transaction.
// Requires admin or superadmin role.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("order", "create")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var issues []string
	if req.ClientID == 0 {
		issues = append(issues, "client_id is required")
	}
	if req.PONo == "" {
		issues = append(issues, "po_no is required")
	}
	if req.DeliveryDate == "" {
		issues = append(issues, "delivery_date is required")
	}
	issues = append(issues, req.validateItems()...)
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid delivery date, expected YYYY-MM-DD"})
	}

	status := req.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	if !model.ValidOrderStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order status"})
	}

	db := database.GetDB()

	// PO numbers are unique within a company
	var count int64
	db.Model(&model.ProductionOrder{}).
		Where("company_id = ? AND po_no = ?", companyID(c), req.PONo).
		Count(&count)
	if count > 0 {
		log.Warn("PO number already exists", zap.String("po_no", req.PONo))
		return c.JSON(http.StatusConflict, echo.Map{"error": "PO number already exists"})
	}

	priority := req.Priority
	if priority == 0 {
		priority = 1
	}

	order := model.ProductionOrder{
		CompanyID:    companyID(c),
		ClientID:     req.ClientID,
		PONo:         req.PONo,
		DeliveryDate: deliveryDate,
		Priority:     priority,
		Status:       status,
		Notes:        req.Notes,
	}

	// Order and its items are written atomically
	err = db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&order); result.Error != nil {
			return result.Error
		}
		items := req.buildItems(order.ID)
		if result := tx.Create(&items); result.Error != nil {
			return result.Error
		}
		order.Items = items
		return nil
	})
	if err != nil {
		log.Error("Failed to create production order", zap.String("po_no", req.PONo), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create production order"})
	}

	log.Info("Production order created",
		zap.Uint("order_id", order.ID),
		zap.String("po_no", order.PONo),
		zap.Int("items", len(order.Items)))
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder updates an order and replaces its items in one transaction.
// Status changes are checked against the transition table. Requires admin
// or superadmin role.
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("order", "update")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var issues []string
	if req.ClientID == 0 {
		issues = append(issues, "client_id is required")
	}
	if req.DeliveryDate == "" {
		issues = append(issues, "delivery_date is required")
	}
	issues = append(issues, req.validateItems()...)
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid delivery date, expected YYYY-MM-DD"})
	}

	db := database.GetDB()
	var order model.ProductionOrder
	if result := db.Where("company_id = ?", companyID(c)).First(&order, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "production order not found"})
	}

	status := req.Status
	if status == "" {
		status = order.Status
	}
	if !model.ValidOrderStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order status"})
	}
	if !model.CanTransition(order.Status, status) {
		log.Warn("Rejected order status transition",
			zap.Uint("order_id", id),
			zap.String("from", order.Status),
			zap.String("to", status))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("cannot change order status from %s to %s", order.Status, status),
		})
	}

	order.ClientID = req.ClientID
	order.DeliveryDate = deliveryDate
	if req.Priority != 0 {
		order.Priority = req.Priority
	}
	order.Status = status
	order.Notes = req.Notes

	// Replacing the items is delete-all-then-recreate inside the transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Save(&order); result.Error != nil {
			return result.Error
		}
		if result := tx.Where("production_order_id = ?", order.ID).Delete(&model.ProductionOrderItem{}); result.Error != nil {
			return result.Error
		}
		items := req.buildItems(order.ID)
		if result := tx.Create(&items); result.Error != nil {
			return result.Error
		}
		order.Items = items
		return nil
	})
	if err != nil {
		log.Error("Failed to update production order", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update production order"})
	}

	return c.JSON(http.StatusOK, order)
}

// DeleteOrder deletes an order and its items. Blocked while work plans
// reference the order. Requires admin or superadmin role.
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("order", "delete")

	if !isManager(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	db := database.GetDB()
	var order model.ProductionOrder
	if result := db.Where("company_id = ?", companyID(c)).First(&order, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "production order not found"})
	}

	var workPlans int64
	db.Model(&model.WorkPlan{}).Where("production_order_id = ?", id).Count(&workPlans)
	if workPlans > 0 {
		log.Warn("Order delete blocked by work plans",
			zap.Uint("order_id", id),
			zap.Int64("work_plans", workPlans))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete order with existing work plans"})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("production_order_id = ?", id).Delete(&model.ProductionOrderItem{}); result.Error != nil {
			return result.Error
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		log.Error("Failed to delete production order", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete production order"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "production order deleted successfully"})
}
