package repositoryImp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/store"
	"agri/pkg/weatheralert/repository"
)

type alertRepo struct {
	*store.Repo[entities.WeatherAlert]
}

func New(db *gorm.DB) repository.WeatherAlertRepository {
	return &alertRepo{store.NewRepo[entities.WeatherAlert](db)}
}

func activeAt(at time.Time) store.Scope {
	at = at.UTC()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_time <= ?", at).
			Where("end_time IS NULL OR end_time >= ?", at)
	}
}

func (r *alertRepo) ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.WeatherAlert, error) {
	return r.FindBy(ctx, "field_id", fieldID)
}

func (r *alertRepo) ListByAlertType(ctx context.Context, t entities.AlertType) ([]entities.WeatherAlert, error) {
	return r.FindBy(ctx, "alert_type", t)
}

func (r *alertRepo) ListBySeverity(ctx context.Context, sev entities.Severity) ([]entities.WeatherAlert, error) {
	return r.FindBy(ctx, "severity", sev)
}

func (r *alertRepo) ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]entities.WeatherAlert, error) {
	return r.List(ctx, store.Eq("user_id", userID), store.Eq("is_read", false), store.NewestFirst)
}

func (r *alertRepo) ListActiveForField(ctx context.Context, fieldID uuid.UUID, at time.Time) ([]entities.WeatherAlert, error) {
	return r.List(ctx, store.Eq("field_id", fieldID), activeAt(at), func(db *gorm.DB) *gorm.DB {
		return db.Order("start_time ASC")
	})
}

func (r *alertRepo) ListPendingNotification(ctx context.Context, limit int) ([]entities.WeatherAlert, error) {
	return r.List(ctx, store.Eq("is_notified", false), func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}, store.Limit(limit))
}

func (r *alertRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.Patch(ctx, id, map[string]any{"is_read": true})
}

func (r *alertRepo) MarkNotified(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.DB(ctx).Model(&entities.WeatherAlert{}).Where("id IN ?", ids).Update("is_notified", true).Error
	return store.Classify(err)
}
