package repositoryImp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/irrigation/repository"
	"agri/pkg/store"
)

type schedRepo struct {
	*store.Repo[entities.IrrigationSchedule]
}

func New(db *gorm.DB) repository.IrrigationRepository {
	return &schedRepo{store.NewRepo[entities.IrrigationSchedule](db)}
}

func byDate(db *gorm.DB) *gorm.DB { return db.Order("recommended_date ASC") }

func (r *schedRepo) BulkInsert(ctx context.Context, ss []entities.IrrigationSchedule) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		return r.WithTx(tx).CreateInBatches(ctx, ss, 100)
	})
}

func (r *schedRepo) List(ctx context.Context, fieldID uuid.UUID, from, to time.Time) ([]entities.IrrigationSchedule, error) {
	scopes := []store.Scope{store.Eq("field_id", fieldID)}
	if !from.IsZero() {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("recommended_date >= ?", from.UTC()) })
	}
	if !to.IsZero() {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("recommended_date <= ?", to.UTC()) })
	}
	return r.Repo.List(ctx, append(scopes, byDate)...)
}

func (r *schedRepo) ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]entities.IrrigationSchedule, error) {
	return r.Repo.List(ctx, store.Eq("user_id", userID), store.Eq("is_completed", false), byDate)
}

// Complete marks the schedule done through a full validated update so the
// completion invariants hold.
func (r *schedRepo) Complete(ctx context.Context, id uuid.UUID, actual decimal.NullDecimal, at time.Time) (*entities.IrrigationSchedule, error) {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.IsCompleted = true
	s.CompletedAt = &at
	if actual.Valid {
		s.ActualWaterUsedLiters = actual
	}
	if err := r.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
