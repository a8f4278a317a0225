package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"agri/entities"
	"agri/pkg/store"
)

type FieldRepository interface {
	store.CRUD[entities.Field]
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Field, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Field, error)
	ListByCropType(ctx context.Context, cropType string) ([]entities.Field, error)
	ListSownBetween(ctx context.Context, from, to datatypes.Date) ([]entities.Field, error)
	// FindWithHistory loads the field with its crop records, inferences,
	// alerts and irrigation schedules.
	FindWithHistory(ctx context.Context, id uuid.UUID) (*entities.Field, error)
}
