package serviceImp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agri/entities"
	repo "agri/pkg/irrigation/repository"
	"agri/pkg/irrigation/service"
)

type schedSvc struct {
	r   repo.IrrigationRepository
	loc *time.Location
	log *slog.Logger
}

// NewIrrigationService reads List day bounds in loc; nil means UTC.
func NewIrrigationService(r repo.IrrigationRepository, loc *time.Location, log *slog.Logger) service.IrrigationService {
	if loc == nil {
		loc = time.UTC
	}
	return &schedSvc{r: r, loc: loc, log: log.With("component", "irrigation")}
}

func (s *schedSvc) Plan(ctx context.Context, ss []entities.IrrigationSchedule) error {
	if err := s.r.BulkInsert(ctx, ss); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "irrigation planned", "schedules", len(ss))
	return nil
}

func (s *schedSvc) List(ctx context.Context, fieldID uuid.UUID, from, to string) ([]entities.IrrigationSchedule, error) {
	start, err := parseDay(from, s.loc)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	end, err := parseDay(to, s.loc)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if !end.IsZero() {
		end = end.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return s.r.List(ctx, fieldID, start, end)
}

func (s *schedSvc) Pending(ctx context.Context, userID uuid.UUID) ([]entities.IrrigationSchedule, error) {
	return s.r.ListPendingByUser(ctx, userID)
}

func (s *schedSvc) Complete(ctx context.Context, id uuid.UUID, actual decimal.NullDecimal, at time.Time) (*entities.IrrigationSchedule, error) {
	sched, err := s.r.Complete(ctx, id, actual, at.UTC())
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "irrigation completed", "schedule_id", id, "actual_liters", sched.ActualWaterUsedLiters.Decimal)
	return sched, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
