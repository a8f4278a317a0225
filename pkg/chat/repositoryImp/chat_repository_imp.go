package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/chat/repository"
	"agri/pkg/store"
)

type chatRepo struct {
	*store.Repo[entities.ChatHistory]
}

func New(db *gorm.DB) repository.ChatRepository {
	return &chatRepo{store.NewRepo[entities.ChatHistory](db)}
}

func (r *chatRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entities.ChatHistory, error) {
	return r.List(ctx, store.Eq("user_id", userID), store.NewestFirst, store.Limit(limit))
}

func (r *chatRepo) ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.ChatHistory, error) {
	return r.FindBy(ctx, "field_id", fieldID)
}

func (r *chatRepo) SetFeedback(ctx context.Context, id uuid.UUID, rating int) error {
	if rating < entities.MinFeedbackRating || rating > entities.MaxFeedbackRating {
		return &entities.FieldError{Entity: "chat_history", Column: "feedback_rating", Value: rating, Err: entities.ErrOutOfRange}
	}
	return r.Patch(ctx, id, map[string]any{"feedback_rating": rating})
}
