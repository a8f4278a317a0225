package repository

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type UserRepository interface {
	store.CRUD[entities.User]
	// FindByEmail normalises email before the lookup.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ListByRole(ctx context.Context, role entities.UserRole) ([]entities.User, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
