package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    prometheus.Gauge
	auditWrites *prometheus.CounterVec
	auditPruned prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agri_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agri_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "agri_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		auditWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agri_audit_writes_total",
			Help: "System log writes by result",
		}, []string{"result"}),
		auditPruned: f.NewCounter(prometheus.CounterOpts{
			Name: "agri_audit_pruned_total",
			Help: "System log records removed by retention",
		}),
	}
}

// Middleware records request count, latency and in-flight requests. The
// route label is the matched pattern, not the raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			err := next(c)
			status := responseStatus(c, err)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) AuditWrite(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.auditWrites.WithLabelValues("ok").Inc()
		return
	}
	m.auditWrites.WithLabelValues("error").Inc()
}

func (m *Metrics) AuditPruned(n int64) {
	if m == nil {
		return
	}
	m.auditPruned.Add(float64(n))
}
