package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agri/database"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := h.ping(ctx)
	schemaCheck := sub{OK: false, Err: "skipped: database unavailable"}
	if dbCheck.OK {
		schemaCheck = sub{OK: true}
		if err := database.VerifySchema(ctx, h.db); err != nil {
			schemaCheck = sub{OK: false, Err: err.Error()}
		}
	}

	allOK := dbCheck.OK && schemaCheck.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": dbCheck,
			"schema":   schemaCheck,
		},
		"time": time.Now().UTC().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}

func (h *HealthCtrl) ping(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}
