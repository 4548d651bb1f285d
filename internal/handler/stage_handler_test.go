package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

func TestListStagesDisplayOrder(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	for _, stage := range model.DefaultStages(company.ID) {
		require.NoError(t, db.Create(&stage).Error)
	}

	c, rec := newContext(t, http.MethodGet, "/api/stages", nil, company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListStages(c))

	assertStatus(t, rec, http.StatusOK)

	var stages []model.ProductionStage
	decodeInto(t, rec, &stages)
	require.Len(t, stages, 11)
	assert.Equal(t, "throwing", stages[0].Code)
	assert.Equal(t, "quality_control", stages[10].Code)
}

func TestListStagesActiveFilter(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	active := model.ProductionStage{CompanyID: company.ID, Name: "Throwing", Code: "throwing", DisplayOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&active).Error)
	retired := model.ProductionStage{CompanyID: company.ID, Name: "Old Step", Code: "old_step", DisplayOrder: 2, IsActive: false}
	require.NoError(t, db.Create(&retired).Error)

	c, rec := newContext(t, http.MethodGet, "/api/stages?isActive=true", nil, company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListStages(c))

	assertStatus(t, rec, http.StatusOK)

	var stages []model.ProductionStage
	decodeInto(t, rec, &stages)
	require.Len(t, stages, 1)
	assert.Equal(t, "throwing", stages[0].Code)
}

func TestCreateStageDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	stage := model.ProductionStage{CompanyID: company.ID, Name: "Throwing", Code: "throwing", DisplayOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&stage).Error)

	c, rec := newContext(t, http.MethodPost, "/api/stages", StageRequest{
		Name: "Throwing Again",
		Code: "throwing",
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateStage(c))

	assertStatus(t, rec, http.StatusConflict)
}

func TestCreateStageRequiresManagerRole(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/stages", StageRequest{
		Name: "Extra",
		Code: "extra",
	}, company.ID, 1, model.RoleInputData)
	require.NoError(t, CreateStage(c))

	assertStatus(t, rec, http.StatusUnauthorized)
}
