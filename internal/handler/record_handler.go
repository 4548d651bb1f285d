package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// RecordRequest defines the structure for production record creation requests
type RecordRequest struct {
	WorkPlanID        uint   `json:"work_plan_id"`
	RecordedDate      string `json:"recorded_date"`
	CompletedQuantity int    `json:"completed_quantity"`
	GoodQuantity      int    `json:"good_quantity"`
	RejectQuantity    int    `json:"reject_quantity"`
	RejectReason      string `json:"reject_reason"`
	RejectStage       string `json:"reject_stage"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Notes             string `json:"notes"`
}

// ListRecords handles retrieving production records with optional date,
// operator and stage filters, newest first
func ListRecords(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("record", "list")

	db := database.GetDB()
	query := db.
		Joins("JOIN work_plans ON work_plans.id = production_records.work_plan_id").
		Where("work_plans.company_id = ?", companyID(c))

	if date := c.QueryParam("date"); date != "" {
		query = query.Where("production_records.recorded_date = ?", date)
	}
	if operatorID := c.QueryParam("operatorId"); operatorID != "" {
		query = query.Where("work_plans.operator_id = ?", operatorID)
	}
	if stageID := c.QueryParam("stageId"); stageID != "" {
		query = query.Where("work_plans.production_stage_id = ?", stageID)
	}

	var records []model.ProductionRecord
	result := query.
		Preload("WorkPlan").
		Preload("WorkPlan.Operator").
		Preload("WorkPlan.Product").
		Preload("WorkPlan.ProductionStage").
		Preload("Recorder").
		Order("production_records.recorded_date DESC").
		Find(&records)
	if result.Error != nil {
		log.Error("Failed to list production records", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve production records"})
	}

	return c.JSON(http.StatusOK, records)
}

// CreateRecord handles recording the daily outcome of a work plan. Quantities
// must balance, and only one record may exist per plan and date. A reject
// count over the company limit raises an alert.
func CreateRecord(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("record", "create")

	var req RecordRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.WorkPlanID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "work_plan_id is required"})
	}
	if req.RecordedDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recorded_date is required"})
	}

	recordedDate, err := time.Parse("2006-01-02", req.RecordedDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recorded date, expected YYYY-MM-DD"})
	}

	record := model.ProductionRecord{
		WorkPlanID:        req.WorkPlanID,
		RecordedDate:      recordedDate,
		RecordedBy:        userID(c),
		CompletedQuantity: req.CompletedQuantity,
		GoodQuantity:      req.GoodQuantity,
		RejectQuantity:    req.RejectQuantity,
		Notes:             req.Notes,
	}
	if err := record.ValidateQuantities(); err != nil {
		log.Warn("Rejected production record quantities",
			zap.Uint("work_plan_id", req.WorkPlanID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Reject detail is only meaningful when rejects occurred
	if req.RejectQuantity > 0 {
		record.RejectReason = req.RejectReason
		record.RejectStage = req.RejectStage
	}

	if req.StartTime != "" {
		start, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start time, expected RFC3339"})
		}
		record.StartTime = &start
	}
	if req.EndTime != "" {
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end time, expected RFC3339"})
		}
		record.EndTime = &end
	}

	db := database.GetDB()

	var plan model.WorkPlan
	result := db.Where("company_id = ?", companyID(c)).
		Preload("Operator").
		Preload("ProductionStage").
		First(&plan, req.WorkPlanID)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work plan not found"})
	}

	// One record per plan and date
	var count int64
	db.Model(&model.ProductionRecord{}).
		Where("work_plan_id = ? AND recorded_date = ?", req.WorkPlanID, recordedDate).
		Count(&count)
	if count > 0 {
		log.Warn("Duplicate production record",
			zap.Uint("work_plan_id", req.WorkPlanID),
			zap.String("recorded_date", req.RecordedDate))
		return c.JSON(http.StatusConflict, echo.Map{"error": "record already exists for this work plan and date"})
	}

	if result := db.Create(&record); result.Error != nil {
		log.Error("Failed to create production record",
			zap.Uint("work_plan_id", req.WorkPlanID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create production record"})
	}

	checkRejectLimit(c, &record, &plan)

	log.Info("Production record created",
		zap.Uint("record_id", record.ID),
		zap.Uint("work_plan_id", record.WorkPlanID),
		zap.Int("completed", record.CompletedQuantity),
		zap.Int("rejects", record.RejectQuantity))
	return c.JSON(http.StatusCreated, record)
}

// checkRejectLimit raises a high-severity alert when a record's reject count
// exceeds the company's configured limit. Alert failures do not fail the
// record write.
func checkRejectLimit(c echo.Context, record *model.ProductionRecord, plan *model.WorkPlan) {
	log := logger.FromContext(c)
	db := database.GetDB()

	var company model.Company
	if result := db.First(&company, companyID(c)); result.Error != nil {
		return
	}
	settings, err := company.ParseSettings()
	if err != nil {
		log.Warn("Skipping reject limit check", zap.Error(err))
		return
	}
	if record.RejectQuantity <= settings.RejectLimit {
		return
	}

	recordID := record.ID
	alert := model.Alert{
		CompanyID: companyID(c),
		AlertType: model.AlertTypeRejectLimitExceeded,
		Severity:  model.SeverityHigh,
		Title:     "Reject limit exceeded",
		Message: fmt.Sprintf("Operator %s recorded %d rejects at stage %s on %s (limit: %d)",
			plan.Operator.FullName,
			record.RejectQuantity,
			plan.ProductionStage.Name,
			record.RecordedDate.Format("2006-01-02"),
			settings.RejectLimit),
		RelatedRecordID:   &recordID,
		RelatedRecordType: "production_record",
	}
	if result := db.Create(&alert); result.Error != nil {
		log.Error("Failed to raise reject limit alert",
			zap.Uint("record_id", record.ID),
			zap.Error(result.Error))
		return
	}

	prometheus.RecordAlertRaised(model.AlertTypeRejectLimitExceeded, model.SeverityHigh)
	log.Warn("Reject limit exceeded",
		zap.Uint("record_id", record.ID),
		zap.Int("rejects", record.RejectQuantity),
		zap.Int("limit", settings.RejectLimit))
}
