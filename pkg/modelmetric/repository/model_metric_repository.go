package repository

import (
	"context"

	"gorm.io/datatypes"

	"agri/entities"
	"agri/pkg/store"
)

type ModelMetricRepository interface {
	store.CRUD[entities.ModelMetric]
	// RecordRun stores every metric of one evaluation run or none of them.
	RecordRun(ctx context.Context, ms []entities.ModelMetric) error
	ListByVersion(ctx context.Context, version string) ([]entities.ModelMetric, error)
	// Latest returns the most recent overall score of the given type.
	Latest(ctx context.Context, version string, t entities.MetricType) (*entities.ModelMetric, error)
	ListEvaluatedBetween(ctx context.Context, from, to datatypes.Date) ([]entities.ModelMetric, error)
}
