package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/handler"
	mid "github.com/imadegun/prod-tracking-app/internal/middleware"
	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/config"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/jwtutil"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

func main() {
	appConfig, err := config.Load("prod-tracking")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
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

	log.Info("Starting prod-tracking", appConfig.LogConfig()...)

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

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
	log.Info("Database connection established")

	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	e.POST("/api/auth/login", handler.Login)

	api := e.Group("/api", mid.AuthMiddleware)
	api.GET("/auth/me", handler.Me)

	companyAPI := api.Group("/companies", mid.RequireRole(model.RoleSuperAdmin))
	companyAPI.GET("", handler.ListCompanies)
	companyAPI.GET("/:id", handler.GetCompany)
	companyAPI.POST("", handler.CreateCompany)
	companyAPI.PUT("/:id", handler.UpdateCompany)

	operatorAPI := api.Group("/operators")
	operatorAPI.GET("", handler.ListOperators)
	operatorAPI.GET("/:id", handler.GetOperator)
	operatorAPI.POST("", handler.CreateOperator)
	operatorAPI.PUT("/:id", handler.UpdateOperator)
	operatorAPI.DELETE("/:id", handler.DeleteOperator)

	clientAPI := api.Group("/clients")
	clientAPI.GET("", handler.ListClients)
	clientAPI.GET("/:id", handler.GetClient)
	clientAPI.POST("", handler.CreateClient)
	clientAPI.PUT("/:id", handler.UpdateClient)
	clientAPI.DELETE("/:id", handler.DeleteClient)

	productAPI := api.Group("/products")
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	stageAPI := api.Group("/stages")
	stageAPI.GET("", handler.ListStages)
	stageAPI.POST("", handler.CreateStage)

	orderAPI := api.Group("/orders")
	orderAPI.GET("", handler.ListOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.POST("", handler.CreateOrder)
	orderAPI.PUT("/:id", handler.UpdateOrder)
	orderAPI.DELETE("/:id", handler.DeleteOrder)

	workPlanAPI := api.Group("/work-plans")
	workPlanAPI.GET("", handler.ListWorkPlans)
	workPlanAPI.GET("/:id", handler.GetWorkPlan)
	workPlanAPI.POST("", handler.CreateWorkPlan)
	workPlanAPI.PUT("/:id", handler.UpdateWorkPlan)
	workPlanAPI.DELETE("/:id", handler.DeleteWorkPlan)

	recordAPI := api.Group("/production-records")
	recordAPI.GET("", handler.ListRecords)
	recordAPI.POST("", handler.CreateRecord)

	targetAPI := api.Group("/monthly-targets")
	targetAPI.GET("", handler.ListTargets)
	targetAPI.POST("", handler.CreateTarget)
	targetAPI.PUT("/:id", handler.UpdateTarget)
	targetAPI.DELETE("/:id", handler.DeleteTarget)

	appraisalAPI := api.Group("/appraisals")
	appraisalAPI.GET("", handler.ListAppraisals)
	appraisalAPI.GET("/:id", handler.GetAppraisal)
	appraisalAPI.POST("", handler.CreateAppraisal)
	appraisalAPI.PUT("/:id", handler.UpdateAppraisal)
	appraisalAPI.DELETE("/:id", handler.DeleteAppraisal)

	alertAPI := api.Group("/alerts")
	alertAPI.GET("", handler.ListAlerts)
	alertAPI.POST("", handler.CreateAlert)
	alertAPI.PUT("/:id/resolve", handler.ResolveAlert)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
