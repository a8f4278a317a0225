package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agri/entities"
	"agri/pkg/store"
)

type AuditRepository interface {
	store.CRUD[entities.SystemLog]
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entities.SystemLog, error)
	ListByAction(ctx context.Context, action string) ([]entities.SystemLog, error)
	ListByStatus(ctx context.Context, status int) ([]entities.SystemLog, error)
	// ListErrorsSince returns requests that failed with a 5xx status or
	// recorded an error message.
	ListErrorsSince(ctx context.Context, since time.Time) ([]entities.SystemLog, error)
	// Prune deletes records created before cutoff.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
