package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewareLogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := log
	log = zap.New(core)
	defer func() { log = prev }()

	e := echo.New()
	e.Use(Middleware())
	e.GET("/health", func(c echo.Context) error {
		// The request-scoped logger must be available to handlers
		assert.NotNil(t, c.Get("logger"))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-123", fields["request_id"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.NotNil(t, FromContext(c))
}
