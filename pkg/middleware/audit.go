package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agri/entities"
	"agri/pkg/audit/repository"
)

// Audit writes one SystemLog per request after the handler returns. The
// write outlives a cancelled request context. A failed write is logged and
// counted but never changes the response.
func Audit(r repository.AuditRepository, m *Metrics, log *slog.Logger) echo.MiddlewareFunc {
	log = log.With("component", "audit")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			status := responseStatus(c, err)
			ms := int(time.Since(start).Milliseconds())
			entry := &entities.SystemLog{
				UserID:        UserID(c),
				Action:        action(c),
				RequestMethod: req.Method,
				RequestPath:   truncate(req.URL.Path, 500),
				StatusCode:    &status,
				DurationMS:    &ms,
				IPAddress:     truncate(c.RealIP(), 45),
				UserAgent:     req.UserAgent(),
			}
			if err != nil {
				entry.ErrorMessage = err.Error()
			}
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				entry.Metadata = entities.JSON(entities.LogMetadata{RequestID: id})
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), 2*time.Second)
			defer cancel()
			if werr := r.Create(ctx, entry); werr != nil {
				log.WarnContext(ctx, "audit write failed", "path", entry.RequestPath, "err", werr)
				m.AuditWrite(false)
			} else {
				m.AuditWrite(true)
			}
			return err
		}
	}
}

// action names the request by its route pattern, e.g. "GET /health".
func action(c echo.Context) string {
	route := c.Path()
	if route == "" {
		route = c.Request().URL.Path
	}
	return truncate(c.Request().Method+" "+route, 100)
}

// responseStatus is the status the client sees. A handler error that has not
// been written yet is rendered later by echo's error handler.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
