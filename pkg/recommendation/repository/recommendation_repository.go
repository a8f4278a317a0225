package repository

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type RecommendationRepository interface {
	store.CRUD[entities.Recommendation]
	// ListByInference returns the treatments of one inference, most urgent first.
	ListByInference(ctx context.Context, inferenceID uuid.UUID) ([]entities.Recommendation, error)
	ListByTreatmentType(ctx context.Context, t entities.TreatmentType) ([]entities.Recommendation, error)
}
