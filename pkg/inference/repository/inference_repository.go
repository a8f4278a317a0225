package repository

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type InferenceRepository interface {
	store.CRUD[entities.ImageInference]
	// CreateWithRecommendations writes the inference and its treatments in
	// one transaction.
	CreateWithRecommendations(ctx context.Context, inf *entities.ImageInference, recs []entities.Recommendation) error
	ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.ImageInference, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.ImageInference, error)
	ListByTopDisease(ctx context.Context, disease string) ([]entities.ImageInference, error)
	ListByType(ctx context.Context, t entities.InferenceType) ([]entities.ImageInference, error)
	RecordFeedback(ctx context.Context, id uuid.UUID, correct bool) error
}
