package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agri/entities"
	"agri/pkg/inference/repository"
	"agri/pkg/store"
)

type inferenceRepo struct {
	*store.Repo[entities.ImageInference]
}

func New(db *gorm.DB) repository.InferenceRepository {
	return &inferenceRepo{store.NewRepo[entities.ImageInference](db)}
}

func (r *inferenceRepo) CreateWithRecommendations(ctx context.Context, inf *entities.ImageInference, recs []entities.Recommendation) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(inf).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		for i := range recs {
			recs[i].InferenceID = inf.ID
		}
		if err := tx.Create(&recs).Error; err != nil {
			return err
		}
		inf.Recommendations = recs
		return nil
	})
}

func (r *inferenceRepo) ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.ImageInference, error) {
	return r.FindBy(ctx, "field_id", fieldID)
}

func (r *inferenceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.ImageInference, error) {
	return r.FindBy(ctx, "user_id", userID)
}

func (r *inferenceRepo) ListByTopDisease(ctx context.Context, disease string) ([]entities.ImageInference, error) {
	return r.FindBy(ctx, "top_disease", disease)
}

func (r *inferenceRepo) ListByType(ctx context.Context, t entities.InferenceType) ([]entities.ImageInference, error) {
	return r.FindBy(ctx, "inference_type", t)
}

func (r *inferenceRepo) RecordFeedback(ctx context.Context, id uuid.UUID, correct bool) error {
	return r.Patch(ctx, id, map[string]any{
		"is_feedback_provided": true,
		"feedback_correct":     correct,
	})
}
