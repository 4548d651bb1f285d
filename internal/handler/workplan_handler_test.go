package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

type planFixture struct {
	company  *model.Company
	operator *model.Operator
	product  *model.Product
	stage    *model.ProductionStage
}

func seedPlanFixture(t *testing.T, db *gorm.DB) planFixture {
	t.Helper()
	company := seedCompany(t, db)
	operator := model.Operator{CompanyID: company.ID, EmployeeID: "EMP001", FullName: "John Smith", IsActive: true}
	require.NoError(t, db.Create(&operator).Error)
	product := seedProduct(t, db, company.ID, "CER001")
	stage := model.ProductionStage{CompanyID: company.ID, Name: "Throwing", Code: "throwing", DisplayOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&stage).Error)
	return planFixture{company: company, operator: &operator, product: product, stage: &stage}
}

func planRequest(f planFixture) WorkPlanRequest {
	return WorkPlanRequest{
		WeekStart:         "2024-11-04",
		OperatorID:        f.operator.ID,
		ProductID:         f.product.ID,
		ProductionStageID: f.stage.ID,
		TargetQuantity:    20,
		PlannedDate:       "2024-11-05",
	}
}

func TestCreateWorkPlan(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/work-plans", planRequest(f), f.company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateWorkPlan(c))

	assertStatus(t, rec, http.StatusCreated)

	var plan model.WorkPlan
	require.NoError(t, db.First(&plan).Error)
	assert.Equal(t, f.operator.ID, plan.OperatorID)
	assert.Equal(t, 20, plan.TargetQuantity)
}

func TestCreateWorkPlanDuplicate(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/work-plans", planRequest(f), f.company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateWorkPlan(c))
	assertStatus(t, rec, http.StatusCreated)

	c, rec = newContext(t, http.MethodPost, "/api/work-plans", planRequest(f), f.company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateWorkPlan(c))
	assertStatus(t, rec, http.StatusConflict)
}

func TestCreateWorkPlanRequiresManagerRole(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/work-plans", planRequest(f), f.company.ID, 1, model.RoleInputData)
	require.NoError(t, CreateWorkPlan(c))

	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestCreateWorkPlanUnknownOperator(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)

	req := planRequest(f)
	req.OperatorID = 999
	c, rec := newContext(t, http.MethodPost, "/api/work-plans", req, f.company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateWorkPlan(c))

	assertStatus(t, rec, http.StatusNotFound)
}

func TestDeleteWorkPlanBlockedByRecords(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)

	plan := model.WorkPlan{
		CompanyID:         f.company.ID,
		WeekStart:         date("2024-11-04"),
		OperatorID:        f.operator.ID,
		ProductID:         f.product.ID,
		ProductionStageID: f.stage.ID,
		TargetQuantity:    20,
		PlannedDate:       date("2024-11-05"),
	}
	require.NoError(t, db.Create(&plan).Error)
	record := model.ProductionRecord{
		WorkPlanID:        plan.ID,
		RecordedDate:      date("2024-11-05"),
		RecordedBy:        1,
		CompletedQuantity: 18,
		GoodQuantity:      17,
		RejectQuantity:    1,
	}
	require.NoError(t, db.Create(&record).Error)

	c, rec := newContext(t, http.MethodDelete, "/api/work-plans/1", nil, f.company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteWorkPlan(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestListWorkPlansFilterByOperator(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)
	other := model.Operator{CompanyID: f.company.ID, EmployeeID: "EMP002", FullName: "Sarah Johnson", IsActive: true}
	require.NoError(t, db.Create(&other).Error)

	for _, op := range []uint{f.operator.ID, other.ID} {
		plan := model.WorkPlan{
			CompanyID:         f.company.ID,
			WeekStart:         date("2024-11-04"),
			OperatorID:        op,
			ProductID:         f.product.ID,
			ProductionStageID: f.stage.ID,
			TargetQuantity:    20,
			PlannedDate:       date("2024-11-05"),
		}
		require.NoError(t, db.Create(&plan).Error)
	}

	c, rec := newContext(t, http.MethodGet, "/api/work-plans?operatorId=1", nil, f.company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListWorkPlans(c))

	assertStatus(t, rec, http.StatusOK)

	var plans []model.WorkPlan
	decodeInto(t, rec, &plans)
	require.Len(t, plans, 1)
	assert.Equal(t, f.operator.ID, plans[0].OperatorID)
}
