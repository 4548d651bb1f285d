package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

func seedClient(t *testing.T, db *gorm.DB, companyID uint) *model.Client {
	t.Helper()
	client := model.Client{CompanyID: companyID, Name: "Art Gallery Downtown", IsActive: true}
	require.NoError(t, db.Create(&client).Error)
	return &client
}

func seedProduct(t *testing.T, db *gorm.DB, companyID uint, code string) *model.Product {
	t.Helper()
	product := model.Product{CompanyID: companyID, Code: code, Name: "Classic Vase", DifficultyLevel: 3, IsActive: true}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func seedOrder(t *testing.T, db *gorm.DB, companyID, clientID, productID uint, poNo, status string) *model.ProductionOrder {
	t.Helper()
	order := model.ProductionOrder{
		CompanyID:    companyID,
		ClientID:     clientID,
		PONo:         poNo,
		DeliveryDate: date("2024-12-15"),
		Priority:     1,
		Status:       status,
	}
	require.NoError(t, db.Create(&order).Error)
	item := model.ProductionOrderItem{
		ProductionOrderID: order.ID,
		ProductID:         productID,
		QtyOrdered:        50,
		QtyForming:        model.FormingQuantity(50),
	}
	require.NoError(t, db.Create(&item).Error)
	return &order
}

func TestCreateOrderDerivesFormingQuantity(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")

	c, rec := newContext(t, http.MethodPost, "/api/orders", OrderRequest{
		ClientID:     client.ID,
		PONo:         "PO-2024-001",
		DeliveryDate: "2024-12-15",
		Priority:     2,
		Items: []OrderItemRequest{
			{ProductID: product.ID, QtyOrdered: 50},
		},
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOrder(c))

	assertStatus(t, rec, http.StatusCreated)

	var items []model.ProductionOrderItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].QtyOrdered)
	assert.Equal(t, 58, items[0].QtyForming)
}

func TestCreateOrderExplicitFormingQuantityWins(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")

	forming := 70
	c, rec := newContext(t, http.MethodPost, "/api/orders", OrderRequest{
		ClientID:     client.ID,
		PONo:         "PO-2024-001",
		DeliveryDate: "2024-12-15",
		Items: []OrderItemRequest{
			{ProductID: product.ID, QtyOrdered: 50, QtyForming: &forming},
		},
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOrder(c))

	assertStatus(t, rec, http.StatusCreated)

	var item model.ProductionOrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 70, item.QtyForming)
}

func TestCreateOrderDuplicatePONumber(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")
	seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-001", model.OrderStatusPending)

	c, rec := newContext(t, http.MethodPost, "/api/orders", OrderRequest{
		ClientID:     client.ID,
		PONo:         "PO-2024-001",
		DeliveryDate: "2024-12-15",
		Items: []OrderItemRequest{
			{ProductID: product.ID, QtyOrdered: 10},
		},
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOrder(c))

	assertStatus(t, rec, http.StatusConflict)
}

func TestCreateOrderRequiresManagerRole(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/orders", OrderRequest{}, company.ID, 1, model.RoleInputData)
	require.NoError(t, CreateOrder(c))

	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestCreateOrderWithoutItems(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)

	c, rec := newContext(t, http.MethodPost, "/api/orders", OrderRequest{
		ClientID:     client.ID,
		PONo:         "PO-2024-001",
		DeliveryDate: "2024-12-15",
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOrder(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestUpdateOrderStatusTransitionRejected(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")
	order := seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-001", model.OrderStatusPending)

	// pending cannot jump straight to completed
	c, rec := newContext(t, http.MethodPut, "/api/orders/1", OrderRequest{
		ClientID:     client.ID,
		DeliveryDate: "2024-12-15",
		Status:       model.OrderStatusCompleted,
		Items: []OrderItemRequest{
			{ProductID: product.ID, QtyOrdered: 50},
		},
	}, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, UpdateOrder(c))

	assertStatus(t, rec, http.StatusBadRequest)

	var stored model.ProductionOrder
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, model.OrderStatusPending, stored.Status)
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	vase := seedProduct(t, db, company.ID, "CER001")
	bowl := seedProduct(t, db, company.ID, "CER002")
	order := seedOrder(t, db, company.ID, client.ID, vase.ID, "PO-2024-001", model.OrderStatusPending)

	c, rec := newContext(t, http.MethodPut, "/api/orders/1", OrderRequest{
		ClientID:     client.ID,
		DeliveryDate: "2024-12-20",
		Status:       model.OrderStatusInProgress,
		Items: []OrderItemRequest{
			{ProductID: bowl.ID, QtyOrdered: 30},
		},
	}, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, UpdateOrder(c))

	assertStatus(t, rec, http.StatusOK)

	var items []model.ProductionOrderItem
	require.NoError(t, db.Where("production_order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, bowl.ID, items[0].ProductID)
	assert.Equal(t, 35, items[0].QtyForming)

	var stored model.ProductionOrder
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, model.OrderStatusInProgress, stored.Status)
}

func TestDeleteOrderBlockedByWorkPlans(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")
	order := seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-001", model.OrderStatusPending)

	stage := model.ProductionStage{CompanyID: company.ID, Name: "Throwing", Code: "throwing", DisplayOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&stage).Error)
	operator := model.Operator{CompanyID: company.ID, EmployeeID: "EMP001", FullName: "John Smith", IsActive: true}
	require.NoError(t, db.Create(&operator).Error)
	plan := model.WorkPlan{
		CompanyID:         company.ID,
		WeekStart:         date("2024-11-04"),
		OperatorID:        operator.ID,
		ProductionOrderID: &order.ID,
		ProductID:         product.ID,
		ProductionStageID: stage.ID,
		TargetQuantity:    10,
		PlannedDate:       date("2024-11-05"),
	}
	require.NoError(t, db.Create(&plan).Error)

	c, rec := newContext(t, http.MethodDelete, "/api/orders/1", nil, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteOrder(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestGetOrderScopedToCompany(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	other := model.Company{Name: "Other", Code: "OTHER", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")
	seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-001", model.OrderStatusPending)

	c, rec := newContext(t, http.MethodGet, "/api/orders/1", nil, other.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, GetOrder(c))

	assertStatus(t, rec, http.StatusNotFound)
}

func TestListOrdersFilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")
	seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-001", model.OrderStatusPending)
	seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-002", model.OrderStatusInProgress)

	c, rec := newContext(t, http.MethodGet, "/api/orders?status=pending", nil, company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListOrders(c))

	assertStatus(t, rec, http.StatusOK)

	var orders []orderResponse
	decodeInto(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "PO-2024-001", orders[0].PONo)
}
