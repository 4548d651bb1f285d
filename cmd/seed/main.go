package main

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/config"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
)

// Seeds the default company, stage pipeline, users, and sample master data
// for a fresh installation. Safe to re-run: existing rows are left alone.
func main() {
	appConfig, err := config.Load("prod-tracking")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	if _, err := database.InitDB(&appConfig.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
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
	); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	db := database.GetDB()

	company, err := seedCompany(db)
	if err != nil {
		log.Fatal("Failed to seed company", zap.Error(err))
	}
	log.Info("Seeded company", zap.String("code", company.Code))

	if err := seedStages(db, company.ID); err != nil {
		log.Fatal("Failed to seed stages", zap.Error(err))
	}
	if err := seedUsers(db, company.ID); err != nil {
		log.Fatal("Failed to seed users", zap.Error(err))
	}
	if err := seedOperators(db, company.ID); err != nil {
		log.Fatal("Failed to seed operators", zap.Error(err))
	}
	if err := seedClients(db, company.ID); err != nil {
		log.Fatal("Failed to seed clients", zap.Error(err))
	}
	if err := seedProducts(db, company.ID); err != nil {
		log.Fatal("Failed to seed products", zap.Error(err))
	}
	if err := seedSampleOrder(db, company.ID); err != nil {
		log.Fatal("Failed to seed sample order", zap.Error(err))
	}

	log.Info("Database seeding completed")
}

func seedCompany(db *gorm.DB) (*model.Company, error) {
	var company model.Company
	if result := db.Where("code = ?", "DEFAULT").First(&company); result.Error == nil {
		return &company, nil
	}

	company = model.Company{
		Name:     "Default Ceramic Company",
		Code:     "DEFAULT",
		Address:  "123 Ceramic Street, Craft City",
		Phone:    "+1-555-0123",
		Email:    "info@ceramiccompany.com",
		IsActive: true,
	}
	if err := company.SetSettings(model.DefaultSettings()); err != nil {
		return nil, err
	}
	if result := db.Create(&company); result.Error != nil {
		return nil, result.Error
	}
	return &company, nil
}

func seedStages(db *gorm.DB, companyID uint) error {
	for _, stage := range model.DefaultStages(companyID) {
		var count int64
		db.Model(&model.ProductionStage{}).
			Where("company_id = ? AND code = ?", companyID, stage.Code).
			Count(&count)
		if count > 0 {
			continue
		}
		if result := db.Create(&stage); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, companyID uint) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{Username: "admin", Email: "admin@ceramiccompany.com", Role: model.RoleAdmin, FullName: "System Administrator"},
		{Username: "inputuser", Email: "input@ceramiccompany.com", Role: model.RoleInputData, FullName: "Data Entry Operator"},
		{Username: "superadmin", Email: "superadmin@ceramiccompany.com", Role: model.RoleSuperAdmin, FullName: "Super Administrator"},
	}
	for _, user := range users {
		var count int64
		db.Model(&model.User{}).Where("username = ?", user.Username).Count(&count)
		if count > 0 {
			continue
		}
		user.CompanyID = companyID
		user.PasswordHash = string(hash)
		if result := db.Create(&user); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func seedOperators(db *gorm.DB, companyID uint) error {
	hireDate := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	operators := []struct {
		employeeID string
		fullName   string
		skills     []string
	}{
		{"EMP001", "John Smith", []string{"throwing", "trimming"}},
		{"EMP002", "Sarah Johnson", []string{"decoration", "glazing"}},
		{"EMP003", "Mike Wilson", []string{"quality_control", "sanding_waxing"}},
		{"EMP004", "Emily Davis", []string{"throwing", "bisquit_loading"}},
		{"EMP005", "Robert Brown", []string{"high_fire", "bisquit_exit"}},
	}
	for _, op := range operators {
		var count int64
		db.Model(&model.Operator{}).
			Where("company_id = ? AND employee_id = ?", companyID, op.employeeID).
			Count(&count)
		if count > 0 {
			continue
		}
		operator := model.Operator{
			CompanyID:  companyID,
			EmployeeID: op.employeeID,
			FullName:   op.fullName,
			HireDate:   &hireDate,
			IsActive:   true,
		}
		if err := operator.SetSkills(op.skills); err != nil {
			return err
		}
		if result := db.Create(&operator); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func seedClients(db *gorm.DB, companyID uint) error {
	clients := []model.Client{
		{Name: "Art Gallery Downtown", Department: "Acquisitions", ContactPerson: "Jane Cooper", Phone: "555-0101", Email: "jane@artgallery.com"},
		{Name: "Home Decor Store", Department: "Purchasing", ContactPerson: "Tom Miller", Phone: "555-0102", Email: "tom@homedecor.com"},
		{Name: "Restaurant Chain", Department: "Procurement", ContactPerson: "Lisa Anderson", Phone: "555-0103", Email: "lisa@restaurant.com"},
	}
	for _, client := range clients {
		var count int64
		db.Model(&model.Client{}).
			Where("company_id = ? AND name = ?", companyID, client.Name).
			Count(&count)
		if count > 0 {
			continue
		}
		client.CompanyID = companyID
		client.IsActive = true
		if result := db.Create(&client); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func seedProducts(db *gorm.DB, companyID uint) error {
	stdTime := func(v float64) *float64 { return &v }

	products := []model.Product{
		{Code: "CER001", Name: "Classic Vase", Color: "Blue", Texture: "Smooth", Material: "Porcelain", StandardTime: stdTime(2.5), DifficultyLevel: 3},
		{Code: "CER002", Name: "Decorative Bowl", Color: "Green", Texture: "Rough", Material: "Stoneware", StandardTime: stdTime(1.8), DifficultyLevel: 2},
		{Code: "CER003", Name: "Coffee Mug Set", Color: "Brown", Texture: "Matte", Material: "Ceramic", StandardTime: stdTime(1.2), DifficultyLevel: 1},
		{Code: "CER004", Name: "Artistic Plate", Color: "Red", Texture: "Glossy", Material: "Porcelain", StandardTime: stdTime(2.0), DifficultyLevel: 4},
		{Code: "CER005", Name: "Teapot", Color: "White", Texture: "Textured", Material: "Stoneware", StandardTime: stdTime(3.5), DifficultyLevel: 5},
	}
	for _, product := range products {
		var count int64
		db.Model(&model.Product{}).
			Where("company_id = ? AND code = ?", companyID, product.Code).
			Count(&count)
		if count > 0 {
			continue
		}
		product.CompanyID = companyID
		product.IsActive = true
		if result := db.Create(&product); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func seedSampleOrder(db *gorm.DB, companyID uint) error {
	var count int64
	db.Model(&model.ProductionOrder{}).
		Where("company_id = ? AND po_no = ?", companyID, "PO-2024-001").
		Count(&count)
	if count > 0 {
		return nil
	}

	var client model.Client
	if result := db.Where("company_id = ? AND name = ?", companyID, "Art Gallery Downtown").First(&client); result.Error != nil {
		return result.Error
	}
	var vase, bowl model.Product
	if result := db.Where("company_id = ? AND code = ?", companyID, "CER001").First(&vase); result.Error != nil {
		return result.Error
	}
	if result := db.Where("company_id = ? AND code = ?", companyID, "CER002").First(&bowl); result.Error != nil {
		return result.Error
	}

	return db.Transaction(func(tx *gorm.DB) error {
		order := model.ProductionOrder{
			CompanyID:    companyID,
			ClientID:     client.ID,
			PONo:         "PO-2024-001",
			DeliveryDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			Priority:     2,
			Status:       model.OrderStatusPending,
			Notes:        "Urgent order for gallery exhibition",
		}
		if result := tx.Create(&order); result.Error != nil {
			return result.Error
		}

		items := []model.ProductionOrderItem{
			{
				ProductionOrderID: order.ID,
				ProductID:         vase.ID,
				QtyOrdered:        50,
				QtyForming:        model.FormingQuantity(50),
				Notes:             "Classic design with blue glaze",
			},
			{
				ProductionOrderID: order.ID,
				ProductID:         bowl.ID,
				QtyOrdered:        30,
				QtyForming:        model.FormingQuantity(30),
				Notes:             "Decorative bowls for display",
			},
		}
		return tx.Create(&items).Error
	})
}
