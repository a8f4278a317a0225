package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/recommendation/repository"
	"agri/pkg/store"
)

type recommendationRepo struct {
	*store.Repo[entities.Recommendation]
}

func New(db *gorm.DB) repository.RecommendationRepository {
	return &recommendationRepo{store.NewRepo[entities.Recommendation](db)}
}

// ByPriority orders recommendations most urgent first, oldest first within a
// priority.
func ByPriority(db *gorm.DB) *gorm.DB { return db.Order("priority ASC").Order("created_at ASC") }

func (r *recommendationRepo) ListByInference(ctx context.Context, inferenceID uuid.UUID) ([]entities.Recommendation, error) {
	return r.List(ctx, store.Eq("inference_id", inferenceID), ByPriority)
}

func (r *recommendationRepo) ListByTreatmentType(ctx context.Context, t entities.TreatmentType) ([]entities.Recommendation, error) {
	return r.FindBy(ctx, "treatment_type", t)
}
