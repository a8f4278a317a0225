package service

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
)

type FieldService interface {
	CreateField(ctx context.Context, f *entities.Field) (*entities.Field, error)
	// GetFieldByID returns the field only when userID owns it.
	GetFieldByID(ctx context.Context, id, userID uuid.UUID) (*entities.Field, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entities.Field, error)
	History(ctx context.Context, id, userID uuid.UUID) (*entities.Field, error)
}
