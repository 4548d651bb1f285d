package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// AlertRequest defines the structure for alert creation requests
type AlertRequest struct {
	AlertType         string `json:"alert_type"`
	Severity          string `json:"severity"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	RelatedRecordID   *uint  `json:"related_record_id,omitempty"`
	RelatedRecordType string `json:"related_record_type"`
}

// ListAlerts handles retrieving alerts, unresolved and most severe first,
// with optional resolution and severity filters
func ListAlerts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("alert", "list")

	query := database.GetDB().Where("company_id = ?", companyID(c))

	if isResolved := c.QueryParam("isResolved"); isResolved != "" {
		resolved, err := strconv.ParseBool(isResolved)
		if err == nil {
			query = query.Where("is_resolved = ?", resolved)
		}
	}
	if severity := c.QueryParam("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}

	var alerts []model.Alert
	result := query.
		Preload("Resolver").
		Order("is_resolved ASC").
		Order("CASE severity WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC").
		Order("created_at DESC").
		Find(&alerts)
	if result.Error != nil {
		log.Error("Failed to list alerts", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve alerts"})
	}

	return c.JSON(http.StatusOK, alerts)
}

// CreateAlert handles raising an alert manually
func CreateAlert(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("alert", "create")

	var req AlertRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var issues []string
	if req.AlertType == "" {
		issues = append(issues, "alert_type is required")
	}
	if req.Title == "" {
		issues = append(issues, "title is required")
	}
	if req.Message == "" {
		issues = append(issues, "message is required")
	}
	if req.Severity != "" && !model.ValidSeverity(req.Severity) {
		issues = append(issues, "severity must be low, medium, high or critical")
	}
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input data", "details": issues})
	}

	severity := req.Severity
	if severity == "" {
		severity = model.SeverityMedium
	}

	alert := model.Alert{
		CompanyID:         companyID(c),
		AlertType:         req.AlertType,
		Severity:          severity,
		Title:             req.Title,
		Message:           req.Message,
		RelatedRecordID:   req.RelatedRecordID,
		RelatedRecordType: req.RelatedRecordType,
	}

	if result := database.GetDB().Create(&alert); result.Error != nil {
		log.Error("Failed to create alert", zap.String("alert_type", req.AlertType), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create alert"})
	}

	prometheus.RecordAlertRaised(alert.AlertType, alert.Severity)
	log.Info("Alert created",
		zap.Uint("alert_id", alert.ID),
		zap.String("alert_type", alert.AlertType),
		zap.String("severity", alert.Severity))
	return c.JSON(http.StatusCreated, alert)
}

// ResolveAlert marks an alert resolved, stamping the resolver and time.
// Resolution is one-way.
func ResolveAlert(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("alert", "resolve")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid alert ID"})
	}

	db := database.GetDB()
	var alert model.Alert
	if result := db.Where("company_id = ?", companyID(c)).First(&alert, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "alert not found"})
	}

	if !alert.IsResolved {
		resolver := userID(c)
		now := time.Now()
		alert.IsResolved = true
		alert.ResolvedBy = &resolver
		alert.ResolvedAt = &now

		if result := db.Save(&alert); result.Error != nil {
			log.Error("Failed to resolve alert", zap.Uint("alert_id", id), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve alert"})
		}

		log.Info("Alert resolved", zap.Uint("alert_id", id), zap.Uint("resolved_by", resolver))
	}

	return c.JSON(http.StatusOK, alert)
}
