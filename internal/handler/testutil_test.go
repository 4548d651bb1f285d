package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/config"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/jwtutil"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite gives every pooled connection its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Operator{},
		&model.Client{},
		&model.Product{},
		&model.ProductionStage{},
		&model.ProductionOrder{},
		&model.ProductionOrderItem{},
		&model.WorkPlan{},
		&model.ProductionRecord{},
		&model.MonthlyTarget{},
		&model.PerformanceAppraisal{},
		&model.Alert{},
	)
	require.NoError(t, err)

	database.SetDB(db)
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	return db
}

func seedCompany(t *testing.T, db *gorm.DB) *model.Company {
	t.Helper()
	company := model.Company{Name: "Test Ceramics", Code: "TEST", IsActive: true}
	require.NoError(t, company.SetSettings(model.DefaultSettings()))
	require.NoError(t, db.Create(&company).Error)
	return &company
}

// newContext builds an echo context carrying the claims the auth middleware
// would have extracted from a valid token.
func newContext(t *testing.T, method, path string, body any, companyID, userID uint, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.Set("company_id", companyID)
	c.Set("user_id", userID)
	c.Set("username", "tester")
	c.Set("user_role", role)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func setParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
