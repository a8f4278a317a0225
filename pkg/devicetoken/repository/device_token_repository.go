package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type DeviceTokenRepository interface {
	store.CRUD[entities.DeviceToken]
	// Upsert stores t keyed by its token string. An existing row is moved to
	// t's user, reactivated and touched; t receives the stored id.
	Upsert(ctx context.Context, t *entities.DeviceToken) (created bool, err error)
	FindByToken(ctx context.Context, token string) (*entities.DeviceToken, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entities.DeviceToken, error)
	Deactivate(ctx context.Context, token string) error
	Touch(ctx context.Context, token string, at time.Time) error
}
