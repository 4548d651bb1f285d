package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imadegun/prod-tracking-app/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Resource CRUD metrics, labelled by resource and operation
	ResourceOperationsCounter prometheus.CounterVec

	// Alert metrics
	AlertsRaisedCounter prometheus.CounterVec

	initialized bool
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	if initialized {
		return
	}
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ResourceOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_resource_operations_total",
			Help: "Total number of resource operations",
		},
		[]string{"resource", "operation"},
	)

	AlertsRaisedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_alerts_raised_total",
			Help: "Total number of alerts raised by the system",
		},
		[]string{"alert_type", "severity"},
	)

	initialized = true
}

// RecordHTTPRequest records counter and duration for a finished HTTP request
func RecordHTTPRequest(method, path, status string, duration float64) {
	if !initialized {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthAttempt increments the counter for authentication attempts
func RecordAuthAttempt() {
	if initialized {
		AuthAttemptsCounter.Inc()
	}
}

// RecordAuthSuccess increments the counter for successful authentications
func RecordAuthSuccess() {
	if initialized {
		AuthSuccessCounter.Inc()
	}
}

// RecordAuthError increments the counter for authentication errors
func RecordAuthError(reason string) {
	if initialized {
		AuthErrorsCounter.WithLabelValues(reason).Inc()
	}
}

// RecordResourceOperation increments the counter for CRUD operations on a resource
func RecordResourceOperation(resource, operation string) {
	if initialized {
		ResourceOperationsCounter.WithLabelValues(resource, operation).Inc()
	}
}

// RecordAlertRaised increments the counter for system-raised alerts
func RecordAlertRaised(alertType, severity string) {
	if initialized {
		AlertsRaisedCounter.WithLabelValues(alertType, severity).Inc()
	}
}
