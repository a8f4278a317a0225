package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auditRepo "agri/pkg/audit/repository"
	"agri/pkg/middleware"
)

type Deps struct {
	Health  interface{ Health(echo.Context) error }
	Metrics *middleware.Metrics
	// Gatherer backs /metrics.
	Gatherer prometheus.Gatherer
	// Audit is nil when auditing is disabled.
	Audit auditRepo.AuditRepository
	Log   *slog.Logger
}

func New(e *echo.Echo, d Deps) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(d.Metrics.Middleware())
	if d.Audit != nil {
		e.Use(middleware.Audit(d.Audit, d.Metrics, d.Log))
	}
	e.Use(middleware.Identity(false))

	e.GET("/health", d.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	return e
}
