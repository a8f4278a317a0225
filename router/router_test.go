package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri/pkg/audit/repositoryImp"
	healthCtrlImp "agri/pkg/health/controllerImp"
	"agri/pkg/middleware"
	"agri/pkg/testkit"
)

func TestRoutes(t *testing.T) {
	db := testkit.OpenTestDB(t)
	reg := prometheus.NewRegistry()
	audit := repositoryImp.New(db)
	e := New(echo.New(), Deps{
		Health:   healthCtrlImp.NewHealthCtrl(db),
		Metrics:  middleware.NewMetrics(reg),
		Gatherer: reg,
		Audit:    audit,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `agri_http_requests_total{method="GET",route="/health",status="200"} 1`)

	logs, err := audit.ListByAction(context.Background(), "GET /health")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Metadata)
	assert.NotEmpty(t, logs[0].Metadata.Data().RequestID)
}
