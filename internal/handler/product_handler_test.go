package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

func TestCreateProductDefaultsDifficulty(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/products", ProductRequest{
		Code: "CER001",
		Name: "Classic Vase",
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateProduct(c))

	assertStatus(t, rec, http.StatusCreated)

	var stored model.Product
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, 3, stored.DifficultyLevel)
	assert.True(t, stored.IsActive)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	badTime := -1.0
	c, rec := newContext(t, http.MethodPost, "/api/products", ProductRequest{
		Code:            "CER001",
		Name:            "Classic Vase",
		StandardTime:    &badTime,
		DifficultyLevel: 9,
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateProduct(c))

	assertStatus(t, rec, http.StatusBadRequest)
	body := decodeBody(t, rec)
	details := body["details"].([]any)
	assert.Len(t, details, 2)
}

func TestCreateProductDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	seedProduct(t, db, company.ID, "CER001")

	c, rec := newContext(t, http.MethodPost, "/api/products", ProductRequest{
		Code: "CER001",
		Name: "Another Vase",
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateProduct(c))

	assertStatus(t, rec, http.StatusConflict)
}

func TestUpdateProductKeepCodeNoConflict(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	seedProduct(t, db, company.ID, "CER001")

	c, rec := newContext(t, http.MethodPut, "/api/products/1", ProductRequest{
		Code: "CER001",
		Name: "Renamed Vase",
	}, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, UpdateProduct(c))

	assertStatus(t, rec, http.StatusOK)

	var stored model.Product
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "Renamed Vase", stored.Name)
}

func TestDeleteProductBlockedByMonthlyTarget(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")
	target := model.MonthlyTarget{CompanyID: company.ID, ProductID: product.ID, Month: "2024-11", TargetQuantity: 100}
	require.NoError(t, db.Create(&target).Error)

	c, rec := newContext(t, http.MethodDelete, "/api/products/1", nil, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteProduct(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestDeleteClientBlockedByOrders(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	client := seedClient(t, db, company.ID)
	product := seedProduct(t, db, company.ID, "CER001")
	seedOrder(t, db, company.ID, client.ID, product.ID, "PO-2024-001", model.OrderStatusPending)

	c, rec := newContext(t, http.MethodDelete, "/api/clients/1", nil, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteClient(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestListProductsScopedToCompany(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	other := model.Company{Name: "Other", Code: "OTHER", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	seedProduct(t, db, company.ID, "CER001")
	seedProduct(t, db, other.ID, "CER002")

	c, rec := newContext(t, http.MethodGet, "/api/products", nil, company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListProducts(c))

	assertStatus(t, rec, http.StatusOK)

	var products []model.Product
	decodeInto(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "CER001", products[0].Code)
}
