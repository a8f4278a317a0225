package repository

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type ChatRepository interface {
	store.CRUD[entities.ChatHistory]
	// ListByUser returns the user's most recent turns first. limit <= 0
	// returns all of them.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entities.ChatHistory, error)
	ListByField(ctx context.Context, fieldID uuid.UUID) ([]entities.ChatHistory, error)
	SetFeedback(ctx context.Context, id uuid.UUID, rating int) error
}
