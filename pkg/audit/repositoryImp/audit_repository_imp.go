package repositoryImp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/audit/repository"
	"agri/pkg/store"
)

type auditRepo struct {
	*store.Repo[entities.SystemLog]
}

func New(db *gorm.DB) repository.AuditRepository {
	return &auditRepo{store.NewRepo[entities.SystemLog](db)}
}

func (r *auditRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entities.SystemLog, error) {
	return r.List(ctx, store.Eq("user_id", userID), store.NewestFirst, store.Limit(limit))
}

func (r *auditRepo) ListByAction(ctx context.Context, action string) ([]entities.SystemLog, error) {
	return r.FindBy(ctx, "action", action)
}

func (r *auditRepo) ListByStatus(ctx context.Context, status int) ([]entities.SystemLog, error) {
	return r.FindBy(ctx, "status_code", status)
}

func (r *auditRepo) ListErrorsSince(ctx context.Context, since time.Time) ([]entities.SystemLog, error) {
	return r.List(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at >= ?", since.UTC()).
			Where("status_code >= ? OR (error_message IS NOT NULL AND error_message <> '')", 500)
	}, store.NewestFirst)
}

func (r *auditRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.DB(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&entities.SystemLog{})
	return res.RowsAffected, store.Classify(res.Error)
}
