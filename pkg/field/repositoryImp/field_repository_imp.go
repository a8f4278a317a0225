package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/field/repository"
	"agri/pkg/store"
)

type fieldRepo struct {
	*store.Repo[entities.Field]
}

func New(db *gorm.DB) repository.FieldRepository {
	return &fieldRepo{store.NewRepo[entities.Field](db)}
}

func (r *fieldRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Field, error) {
	var f entities.Field
	if err := r.DB(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&f).Error; err != nil {
		return nil, store.Classify(err)
	}
	return &f, nil
}

func (r *fieldRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Field, error) {
	return r.FindBy(ctx, "user_id", userID)
}

func (r *fieldRepo) ListByCropType(ctx context.Context, cropType string) ([]entities.Field, error) {
	return r.FindBy(ctx, "crop_type", cropType)
}

func (r *fieldRepo) ListSownBetween(ctx context.Context, from, to datatypes.Date) ([]entities.Field, error) {
	return r.List(ctx, store.Between("sowing_date", from, to), func(db *gorm.DB) *gorm.DB {
		return db.Order("sowing_date ASC")
	})
}

func (r *fieldRepo) FindWithHistory(ctx context.Context, id uuid.UUID) (*entities.Field, error) {
	var f entities.Field
	err := r.DB(ctx).
		Preload("CropRecords", func(db *gorm.DB) *gorm.DB { return db.Order("sowing_date DESC") }).
		Preload("ImageInferences", store.NewestFirst).
		Preload("WeatherAlerts", func(db *gorm.DB) *gorm.DB { return db.Order("start_time DESC") }).
		Preload("IrrigationSchedules", func(db *gorm.DB) *gorm.DB { return db.Order("recommended_date DESC") }).
		Where("id = ?", id).
		Take(&f).Error
	if err != nil {
		return nil, store.Classify(err)
	}
	return &f, nil
}
