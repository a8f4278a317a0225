package repositoryImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri/entities"
	"agri/pkg/store"
	"agri/pkg/testkit"
)

func run(version string, day time.Time, acc string) []entities.ModelMetric {
	return []entities.ModelMetric{
		{ModelVersion: version, MetricType: entities.MetricAccuracy, MetricValue: entities.Dec(acc), EvaluationDate: entities.DateOf(day)},
		{ModelVersion: version, MetricType: entities.MetricRecall, MetricValue: entities.Dec("0.8123"), DiseaseClass: "brown_spot", EvaluationDate: entities.DateOf(day)},
	}
}

func TestModelMetricRuns(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)

	require.NoError(t, repo.RecordRun(ctx, run("v1.0.0", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "0.91234")))
	require.NoError(t, repo.RecordRun(ctx, run("v1.0.0", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "0.9350")))
	require.NoError(t, repo.RecordRun(ctx, run("v1.1.0", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), "0.9500")))

	v1, err := repo.ListByVersion(ctx, "v1.0.0")
	require.NoError(t, err)
	assert.Len(t, v1, 4)

	latest, err := repo.Latest(ctx, "v1.0.0", entities.MetricAccuracy)
	require.NoError(t, err)
	assert.True(t, latest.MetricValue.Equal(entities.Dec("0.935")))

	_, err = repo.Latest(ctx, "v9", entities.MetricF1Score)
	assert.ErrorIs(t, err, store.ErrNotFound)

	april, err := repo.ListEvaluatedBetween(ctx, entities.Day(2024, time.April, 1), entities.Day(2024, time.April, 30))
	require.NoError(t, err)
	require.Len(t, april, 4)
	assert.Equal(t, "v1.1.0", april[0].ModelVersion)

	march, err := repo.ListEvaluatedBetween(ctx, entities.Day(2024, time.March, 1), entities.Day(2024, time.March, 1))
	require.NoError(t, err)
	require.Len(t, march, 2)
	for _, m := range march {
		if m.MetricType == entities.MetricAccuracy {
			assert.True(t, m.MetricValue.Equal(entities.Dec("0.9123")))
		}
	}
}

func TestModelMetricRunIsAtomic(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)

	ms := run("v2.0.0", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "1.5")
	err := repo.RecordRun(ctx, ms)
	assert.ErrorIs(t, err, entities.ErrOutOfRange)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
