package serviceImp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agri/entities"
	"agri/pkg/store"
	repo "agri/pkg/user/repository"
	"agri/pkg/user/service"
)

const minPasswordLen = 8

type userSvc struct {
	r    repo.UserRepository
	log  *slog.Logger
	cost int
}

func NewUserService(r repo.UserRepository, log *slog.Logger) service.UserService {
	return &userSvc{r: r, log: log.With("component", "user"), cost: bcrypt.DefaultCost}
}

func (s *userSvc) hash(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", service.ErrWeakPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *userSvc) Register(ctx context.Context, reg service.Registration) (*entities.User, error) {
	hash, err := s.hash(reg.Password)
	if err != nil {
		return nil, err
	}
	u := &entities.User{
		Email:              reg.Email,
		PasswordHash:       hash,
		Role:               reg.Role,
		FullName:           reg.FullName,
		PhoneNumber:        reg.PhoneNumber,
		LanguagePreference: reg.LanguagePreference,
	}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *userSvc) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	u, err := s.r.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, service.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, service.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, service.ErrInactive
	}
	return u, nil
}

func (s *userSvc) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return service.ErrInvalidCredentials
	}
	hash, err := s.hash(next)
	if err != nil {
		return err
	}
	return s.r.SetPasswordHash(ctx, id, hash)
}

func (s *userSvc) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.r.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user activation changed", "user_id", id, "active", active)
	return nil
}
