package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agri/entities"
)

type IrrigationService interface {
	Plan(ctx context.Context, ss []entities.IrrigationSchedule) error
	// List accepts YYYY-MM-DD bounds; an empty bound is open.
	List(ctx context.Context, fieldID uuid.UUID, from, to string) ([]entities.IrrigationSchedule, error)
	Pending(ctx context.Context, userID uuid.UUID) ([]entities.IrrigationSchedule, error)
	Complete(ctx context.Context, id uuid.UUID, actual decimal.NullDecimal, at time.Time) (*entities.IrrigationSchedule, error)
}
