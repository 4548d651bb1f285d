package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imadegun/prod-tracking-app/prometheus"
)

// MetricsMiddleware records request count and duration for every request
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := strconv.Itoa(c.Response().Status)
		prometheus.RecordHTTPRequest(
			c.Request().Method,
			c.Path(),
			status,
			time.Since(start).Seconds(),
		)

		return err
	}
}
