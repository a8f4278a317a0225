package repositoryImp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/devicetoken/repository"
	"agri/pkg/store"
)

type tokenRepo struct {
	*store.Repo[entities.DeviceToken]
}

func New(db *gorm.DB) repository.DeviceTokenRepository {
	return &tokenRepo{store.NewRepo[entities.DeviceToken](db)}
}

func (r *tokenRepo) Upsert(ctx context.Context, t *entities.DeviceToken) (bool, error) {
	created := false
	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		txr := r.WithTx(tx)
		var cur entities.DeviceToken
		err := tx.Where("token = ?", t.Token).Take(&cur).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			t.IsActive = true
			created = true
			return txr.Create(ctx, t)
		case err != nil:
			return err
		}
		t.ID = cur.ID
		t.CreatedAt = cur.CreatedAt
		t.IsActive = true
		if t.LastUsedAt.IsZero() {
			t.LastUsedAt = tx.NowFunc()
		}
		if t.DeviceInfo == nil {
			t.DeviceInfo = cur.DeviceInfo
		}
		return txr.Update(ctx, t)
	})
	return created, err
}

func (r *tokenRepo) FindByToken(ctx context.Context, token string) (*entities.DeviceToken, error) {
	var t entities.DeviceToken
	if err := r.DB(ctx).Where("token = ?", token).Take(&t).Error; err != nil {
		return nil, store.Classify(err)
	}
	return &t, nil
}

func (r *tokenRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entities.DeviceToken, error) {
	return r.List(ctx, store.Eq("user_id", userID), store.Eq("is_active", true), func(db *gorm.DB) *gorm.DB {
		return db.Order("last_used_at DESC")
	})
}

func (r *tokenRepo) Deactivate(ctx context.Context, token string) error {
	return r.setByToken(ctx, token, map[string]any{"is_active": false})
}

func (r *tokenRepo) Touch(ctx context.Context, token string, at time.Time) error {
	return r.setByToken(ctx, token, map[string]any{"last_used_at": at.UTC()})
}

func (r *tokenRepo) setByToken(ctx context.Context, token string, cols map[string]any) error {
	res := r.DB(ctx).Model(&entities.DeviceToken{}).Where("token = ?", token).Updates(cols)
	if res.Error != nil {
		return store.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
