package service

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
)

type InferenceService interface {
	// Submit ranks the predictions, fills the top disease summary and stores
	// the inference with its recommendations atomically.
	Submit(ctx context.Context, inf *entities.ImageInference, recs []entities.Recommendation) (*entities.ImageInference, error)
	// Get returns the inference with its recommendations in priority order.
	Get(ctx context.Context, id uuid.UUID) (*entities.ImageInference, error)
	Feedback(ctx context.Context, id uuid.UUID, correct bool) error
}
