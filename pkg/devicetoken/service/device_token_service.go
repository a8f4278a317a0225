package service

import (
	"context"

	"github.com/google/uuid"

	"agri/entities"
)

type DeviceTokenService interface {
	Register(ctx context.Context, t *entities.DeviceToken) (*entities.DeviceToken, error)
	Unregister(ctx context.Context, token string) error
	// Targets returns the push tokens currently registered to the user.
	Targets(ctx context.Context, userID uuid.UUID) ([]string, error)
}
