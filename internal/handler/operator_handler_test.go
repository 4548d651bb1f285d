package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

func TestCreateOperator(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/operators", OperatorRequest{
		EmployeeID: "EMP001",
		FullName:   "John Smith",
		Skills:     []string{"throwing", "trimming"},
		HireDate:   "2023-01-15",
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOperator(c))

	assertStatus(t, rec, http.StatusCreated)

	var stored model.Operator
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, []string{"throwing", "trimming"}, stored.SkillList())
	require.NotNil(t, stored.HireDate)
	assert.Equal(t, "2023-01-15", stored.HireDate.Format("2006-01-02"))
}

func TestCreateOperatorDuplicateEmployeeID(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	seedOperator(t, db, company.ID, "EMP001")

	c, rec := newContext(t, http.MethodPost, "/api/operators", OperatorRequest{
		EmployeeID: "EMP001",
		FullName:   "Imposter",
	}, company.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOperator(c))

	assertStatus(t, rec, http.StatusConflict)
}

func TestCreateOperatorSameEmployeeIDOtherCompany(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	seedOperator(t, db, company.ID, "EMP001")
	other := model.Company{Name: "Other", Code: "OTHER", IsActive: true}
	require.NoError(t, db.Create(&other).Error)

	c, rec := newContext(t, http.MethodPost, "/api/operators", OperatorRequest{
		EmployeeID: "EMP001",
		FullName:   "Jane Doe",
	}, other.ID, 1, model.RoleAdmin)
	require.NoError(t, CreateOperator(c))

	assertStatus(t, rec, http.StatusCreated)
}

func TestListOperatorsActiveFirst(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)

	inactive := model.Operator{CompanyID: company.ID, EmployeeID: "EMP001", FullName: "Aaron Inactive", IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)
	active := model.Operator{CompanyID: company.ID, EmployeeID: "EMP002", FullName: "Zoe Active", IsActive: true}
	require.NoError(t, db.Create(&active).Error)

	c, rec := newContext(t, http.MethodGet, "/api/operators", nil, company.ID, 1, model.RoleAdmin)
	require.NoError(t, ListOperators(c))

	assertStatus(t, rec, http.StatusOK)

	var operators []model.Operator
	decodeInto(t, rec, &operators)
	require.Len(t, operators, 2)
	assert.Equal(t, "Zoe Active", operators[0].FullName)
}

func TestDeleteOperatorBlockedByWorkPlans(t *testing.T) {
	db := setupTestDB(t)
	f := seedPlanFixture(t, db)
	seedPlan(t, db, f)

	c, rec := newContext(t, http.MethodDelete, "/api/operators/1", nil, f.company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteOperator(c))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestDeleteOperator(t *testing.T) {
	db := setupTestDB(t)
	company := seedCompany(t, db)
	seedOperator(t, db, company.ID, "EMP001")

	c, rec := newContext(t, http.MethodDelete, "/api/operators/1", nil, company.ID, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, DeleteOperator(c))

	assertStatus(t, rec, http.StatusOK)

	var count int64
	db.Model(&model.Operator{}).Count(&count)
	assert.Zero(t, count)
}
