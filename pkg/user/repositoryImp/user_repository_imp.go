package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/store"
	"agri/pkg/user/repository"
)

type userRepo struct {
	*store.Repo[entities.User]
}

func New(db *gorm.DB) repository.UserRepository {
	return &userRepo{store.NewRepo[entities.User](db)}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var u entities.User
	if err := r.DB(ctx).Where("email = ?", entities.NormalizeEmail(email)).Take(&u).Error; err != nil {
		return nil, store.Classify(err)
	}
	return &u, nil
}

func (r *userRepo) ListByRole(ctx context.Context, role entities.UserRole) ([]entities.User, error) {
	return r.FindBy(ctx, "role", role)
}

func (r *userRepo) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.Patch(ctx, id, map[string]any{"password_hash": hash})
}

func (r *userRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.Patch(ctx, id, map[string]any{"is_active": active})
}
