package serviceImp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"agri/entities"
	repo "agri/pkg/field/repository"
	"agri/pkg/field/service"
)

type fieldSvc struct {
	r   repo.FieldRepository
	log *slog.Logger
}

func NewFieldService(r repo.FieldRepository, log *slog.Logger) service.FieldService {
	return &fieldSvc{r: r, log: log.With("component", "field")}
}

func (s *fieldSvc) CreateField(ctx context.Context, f *entities.Field) (*entities.Field, error) {
	if err := s.r.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "field created", "field_id", f.ID, "user_id", f.UserID, "crop_type", f.CropType)
	return f, nil
}

func (s *fieldSvc) GetFieldByID(ctx context.Context, id, userID uuid.UUID) (*entities.Field, error) {
	return s.r.FindByIDForUser(ctx, id, userID)
}

func (s *fieldSvc) ListForUser(ctx context.Context, userID uuid.UUID) ([]entities.Field, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *fieldSvc) History(ctx context.Context, id, userID uuid.UUID) (*entities.Field, error) {
	if _, err := s.r.FindByIDForUser(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.r.FindWithHistory(ctx, id)
}
