package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

func TestCreateTarget(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")

	c, rec := newContext(t, http.MethodPost, "/api/monthly-targets", TargetRequest{
		ProductID:      product.ID,
		Month:          "2024-11",
		TargetQuantity: 100,
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateTarget(c))

	assertStatus(t, rec, http.StatusCreated)
}

func TestCreateTargetDuplicateMonth(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")

	req := TargetRequest{ProductID: product.ID, Month: "2024-11", TargetQuantity: 100}
	c, rec := newContext(t, http.MethodPost, "/api/monthly-targets", req, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateTarget(c))
	assertStatus(t, rec, http.StatusCreated)

	c, rec = newContext(t, http.MethodPost, "/api/monthly-targets", req, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateTarget(c))
	assertStatus(t, rec, http.StatusConflict)
}

func TestCreateTargetInvalidMonth(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")

	c, rec := newContext(t, http.MethodPost, "/api/monthly-targets", TargetRequest{
		ProductID:      product.ID,
		Month:          "November 2024",
		TargetQuantity: 100,
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateTarget(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestCreateTargetUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/monthly-targets", TargetRequest{
		ProductID:      999,
		Month:          "2024-11",
		TargetQuantity: 100,
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateTarget(c))

	assertStatus(t, rec, http.StatusNotFound)
}

func TestListTargetsFilterByMonth(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")

	for _, month := range []string{"2024-10", "2024-11"} {
		target := model.MonthlyTarget{CompanyID: company.ID, ProductID: product.ID, Month: month, TargetQuantity: 100}
		require.NoError(t, db.Create(&target).Error)
	}

	c, rec := newContext(t, http.MethodGet, "/api/monthly-targets?month=2024-11", nil, company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListTargets(c))

	assertStatus(t, rec, http.StatusOK)

	var targets []model.MonthlyTarget
	decodeInto(t, rec, &targets)
	require.Len(t, targets, 1)
	assert.Equal(t, "2024-11", targets[0].Month)
}

func TestUpdateTargetConflict(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")

	first := model.MonthlyTarget{CompanyID: company.ID, ProductID: product.ID, Month: "2024-10", TargetQuantity: 100}
	require.NoError(t, db.Create(&first).Error)
	second := model.MonthlyTarget{CompanyID: company.ID, ProductID: product.ID, Month: "2024-11", TargetQuantity: 100}
	require.NoError(t, db.Create(&second).Error)

	// Moving the second target onto the first one's month must fail
	c, rec := newContext(t, http.MethodPut, "/api/monthly-targets/2", TargetRequest{
		ProductID:      product.ID,
		Month:          "2024-10",
		TargetQuantity: 120,
	}, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "2")
	require.NoError(t, UpdateTarget(c))

	assertStatus(t, rec, http.StatusConflict)
}

func TestDeleteTarget(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	product := seedProduct(t, db, company.ID, "CER001")

	target := model.MonthlyTarget{CompanyID: company.ID, ProductID: product.ID, Month: "2024-11", TargetQuantity: 100}
	require.NoError(t, db.Create(&target).Error)

	c, rec := newContext(t, http.MethodDelete, "/api/monthly-targets/1", nil, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteTarget(c))

	assertStatus(t, rec, http.StatusOK)

	var count int64
	db.Model(&model.MonthlyTarget{}).Count(&count)
	assert.Zero(t, count)
}
