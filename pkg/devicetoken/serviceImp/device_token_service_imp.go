package serviceImp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"agri/entities"
	repo "agri/pkg/devicetoken/repository"
	"agri/pkg/devicetoken/service"
)

type tokenSvc struct {
	r   repo.DeviceTokenRepository
	log *slog.Logger
}

func NewDeviceTokenService(r repo.DeviceTokenRepository, log *slog.Logger) service.DeviceTokenService {
	return &tokenSvc{r: r, log: log.With("component", "device_token")}
}

func (s *tokenSvc) Register(ctx context.Context, t *entities.DeviceToken) (*entities.DeviceToken, error) {
	created, err := s.r.Upsert(ctx, t)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "device registered", "user_id", t.UserID, "device_type", t.DeviceType, "new", created)
	return t, nil
}

func (s *tokenSvc) Unregister(ctx context.Context, token string) error {
	return s.r.Deactivate(ctx, token)
}

func (s *tokenSvc) Targets(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ts, err := s.r.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Token)
	}
	return out, nil
}
