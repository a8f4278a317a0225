package serviceImp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"agri/entities"
	repo "agri/pkg/inference/repository"
	"agri/pkg/inference/service"
	recRepo "agri/pkg/recommendation/repository"
)

type inferenceSvc struct {
	r    repo.InferenceRepository
	recs recRepo.RecommendationRepository
	log  *slog.Logger
}

func NewInferenceService(r repo.InferenceRepository, recs recRepo.RecommendationRepository, log *slog.Logger) service.InferenceService {
	return &inferenceSvc{r: r, recs: recs, log: log.With("component", "inference")}
}

func (s *inferenceSvc) Submit(ctx context.Context, inf *entities.ImageInference, recs []entities.Recommendation) (*entities.ImageInference, error) {
	inf.RankPredictions()
	if err := s.r.CreateWithRecommendations(ctx, inf, recs); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "inference stored",
		"inference_id", inf.ID,
		"field_id", inf.FieldID,
		"top_disease", inf.TopDisease,
		"type", inf.InferenceType,
		"recommendations", len(recs))
	return inf, nil
}

func (s *inferenceSvc) Get(ctx context.Context, id uuid.UUID) (*entities.ImageInference, error) {
	inf, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inf.Recommendations, err = s.recs.ListByInference(ctx, id); err != nil {
		return nil, err
	}
	return inf, nil
}

func (s *inferenceSvc) Feedback(ctx context.Context, id uuid.UUID, correct bool) error {
	if err := s.r.RecordFeedback(ctx, id, correct); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "inference feedback", "inference_id", id, "correct", correct)
	return nil
}
