package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type WeatherAlertRepository interface {
	store.CRUD[entities.WeatherAlert]
	ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.WeatherAlert, error)
	ListByAlertType(ctx context.Context, t entities.AlertType) ([]entities.WeatherAlert, error)
	ListBySeverity(ctx context.Context, sev entities.Severity) ([]entities.WeatherAlert, error)
	ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]entities.WeatherAlert, error)
	// ListActiveForField returns the alerts whose window covers at, soonest
	// start first.
	ListActiveForField(ctx context.Context, fieldID uuid.UUID, at time.Time) ([]entities.WeatherAlert, error)
	// ListPendingNotification returns alerts not yet pushed to the farmer,
	// oldest first.
	ListPendingNotification(ctx context.Context, limit int) ([]entities.WeatherAlert, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkNotified(ctx context.Context, ids ...uuid.UUID) error
}
