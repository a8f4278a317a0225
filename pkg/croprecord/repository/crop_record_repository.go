package repository

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type CropRecordRepository interface {
	store.CRUD[entities.CropRecord]
	// CreateBatch inserts all records or none.
	CreateBatch(ctx context.Context, rs []entities.CropRecord) error
	// ListByField returns the field's seasons, oldest sowing first.
	ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.CropRecord, error)
	ListByCropType(ctx context.Context, cropType string) ([]entities.CropRecord, error)
}
