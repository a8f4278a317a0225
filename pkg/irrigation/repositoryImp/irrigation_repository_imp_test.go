package repositoryImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri/entities"
	"agri/pkg/testkit"
)

func TestIrrigationRepo(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	day := time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC)

	var plan []entities.IrrigationSchedule
	for i := range 5 {
		plan = append(plan, entities.IrrigationSchedule{
			FieldID:           f.ID,
			UserID:            u.ID,
			RecommendedDate:   day.AddDate(0, 0, 2*i),
			WaterVolumeLiters: entities.Dec("850.5"),
			WeatherForecast:   entities.JSON(entities.WeatherSnapshot{Source: "open-meteo", RetrievedAt: day}),
		})
	}
	require.NoError(t, repo.BulkInsert(ctx, plan))

	got, err := repo.List(ctx, f.ID, day.AddDate(0, 0, 2), day.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].RecommendedDate.Equal(day.AddDate(0, 0, 2)))
	assert.Equal(t, entities.PayloadSchemaVersion, got[0].WeatherForecast.Data().SchemaVersion)

	all, err := repo.List(ctx, f.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	done, err := repo.Complete(ctx, all[0].ID, entities.NullDec("910.255"), day.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	assert.True(t, done.ActualWaterUsedLiters.Decimal.Equal(entities.Dec("910.26")))

	pending, err := repo.ListPendingByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, pending, 4)
	assert.Equal(t, all[1].ID, pending[0].ID)
}

func TestIrrigationBulkInsertIsAtomic(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)
	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	err := repo.BulkInsert(ctx, []entities.IrrigationSchedule{
		{FieldID: f.ID, UserID: u.ID, RecommendedDate: day, WaterVolumeLiters: entities.Dec("100")},
		{FieldID: f.ID, UserID: u.ID, RecommendedDate: day, WaterVolumeLiters: entities.Dec("-1")},
	})
	assert.ErrorIs(t, err, entities.ErrOutOfRange)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
