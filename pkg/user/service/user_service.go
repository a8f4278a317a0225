package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"agri/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("user is deactivated")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

type Registration struct {
	Email              string
	Password           string
	FullName           string
	PhoneNumber        string
	LanguagePreference string
	Role               entities.UserRole
}

type UserService interface {
	Register(ctx context.Context, r Registration) (*entities.User, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
