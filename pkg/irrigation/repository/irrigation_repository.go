package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agri/entities"
	"agri/pkg/store"
)

type IrrigationRepository interface {
	store.CRUD[entities.IrrigationSchedule]
	BulkInsert(ctx context.Context, ss []entities.IrrigationSchedule) error
	// List returns the field's schedules in [from, to] by recommended date.
	// A zero bound is open.
	List(ctx context.Context, fieldID uuid.UUID, from, to time.Time) ([]entities.IrrigationSchedule, error)
	ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]entities.IrrigationSchedule, error)
	Complete(ctx context.Context, id uuid.UUID, actual decimal.NullDecimal, at time.Time) (*entities.IrrigationSchedule, error)
}
