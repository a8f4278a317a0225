package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/croprecord/repository"
	"agri/pkg/store"
)

const batchSize = 200

type cropRecordRepo struct {
	*store.Repo[entities.CropRecord]
}

func New(db *gorm.DB) repository.CropRecordRepository {
	return &cropRecordRepo{store.NewRepo[entities.CropRecord](db)}
}

func (r *cropRecordRepo) CreateBatch(ctx context.Context, rs []entities.CropRecord) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		return r.WithTx(tx).CreateInBatches(ctx, rs, batchSize)
	})
}

func (r *cropRecordRepo) ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.CropRecord, error) {
	return r.List(ctx, store.Eq("field_id", fieldID), func(db *gorm.DB) *gorm.DB {
		return db.Order("sowing_date ASC")
	})
}

func (r *cropRecordRepo) ListByCropType(ctx context.Context, cropType string) ([]entities.CropRecord, error) {
	return r.FindBy(ctx, "crop_type", cropType)
}
