package repositoryImp

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/modelmetric/repository"
	"agri/pkg/store"
)

type metricRepo struct {
	*store.Repo[entities.ModelMetric]
}

func New(db *gorm.DB) repository.ModelMetricRepository {
	return &metricRepo{store.NewRepo[entities.ModelMetric](db)}
}

func byEvaluation(db *gorm.DB) *gorm.DB {
	return db.Order("evaluation_date DESC").Order("created_at DESC")
}

func (r *metricRepo) RecordRun(ctx context.Context, ms []entities.ModelMetric) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		return r.WithTx(tx).CreateInBatches(ctx, ms, 100)
	})
}

func (r *metricRepo) ListByVersion(ctx context.Context, version string) ([]entities.ModelMetric, error) {
	return r.List(ctx, store.Eq("model_version", version), byEvaluation)
}

func (r *metricRepo) Latest(ctx context.Context, version string, t entities.MetricType) (*entities.ModelMetric, error) {
	ms, err := r.List(ctx,
		store.Eq("model_version", version),
		store.Eq("metric_type", t),
		func(db *gorm.DB) *gorm.DB { return db.Where("disease_class IS NULL OR disease_class = ''") },
		byEvaluation,
		store.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, store.ErrNotFound
	}
	return &ms[0], nil
}

func (r *metricRepo) ListEvaluatedBetween(ctx context.Context, from, to datatypes.Date) ([]entities.ModelMetric, error) {
	return r.List(ctx, store.Between("evaluation_date", from, to), byEvaluation)
}
