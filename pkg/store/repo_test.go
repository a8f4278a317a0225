package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"agri/entities"
	"agri/pkg/store"
	"agri/pkg/testkit"
)

func TestRepoCRUD(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	users := store.NewRepo[entities.User](db)
	fields := store.NewRepo[entities.Field](db)

	u := &entities.User{Email: "crud@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, u))

	f := &entities.Field{
		UserID: u.ID, Name: "Plot A",
		Latitude: entities.Dec("13.1"), Longitude: entities.Dec("100.2"), AreaHectares: entities.Dec("1.5"),
		CropType: "cassava", SowingDate: entities.Day(2024, time.May, 10),
	}
	require.NoError(t, fields.Create(ctx, f))

	got, err := fields.FindByID(ctx, f.ID, "User")
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, u.Email, got.User.Email)

	got.Name = "Plot A (east)"
	require.NoError(t, fields.Update(ctx, got))
	again, err := fields.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plot A (east)", again.Name)

	require.NoError(t, fields.Patch(ctx, f.ID, map[string]any{"irrigation_type": "sprinkler"}))
	again, err = fields.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "sprinkler", again.IrrigationType)

	n, err := fields.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, fields.Delete(ctx, f.ID))
	_, err = fields.FindByID(ctx, f.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, fields.Delete(ctx, f.ID), store.ErrNotFound)
}

func TestRepoUpdateMissingRow(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := store.NewRepo[entities.ModelMetric](db)

	m := &entities.ModelMetric{ModelVersion: "v1", MetricType: entities.MetricRecall, MetricValue: entities.Dec("0.8"), EvaluationDate: entities.Day(2024, 1, 1)}
	m.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, m), store.ErrNotFound)
	assert.ErrorIs(t, repo.Patch(ctx, uuid.New(), map[string]any{"notes": "x"}), store.ErrNotFound)
}

func TestRepoUpdateValidates(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	u := testkit.User(t, db)
	repo := store.NewRepo[entities.User](db)

	u.Role = "superuser"
	err := repo.Update(ctx, u)
	assert.ErrorIs(t, err, entities.ErrInvalidEnum)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleFarmer, got.Role)
}

func TestRepoFindByIndexedColumnsOnly(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	u := testkit.User(t, db)
	advance := testkit.FreezeClock(t, db, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	first := testkit.Field(t, db, u.ID)
	advance(time.Minute)
	second := testkit.Field(t, db, u.ID)

	repo := store.NewRepo[entities.Field](db)
	rows, err := repo.FindBy(ctx, "crop_type", "rice")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)

	_, err = repo.FindBy(ctx, "soil_type", "loam")
	assert.ErrorIs(t, err, store.ErrUnindexedFilter)
	assert.ErrorContains(t, err, "fields.soil_type")

	users := store.NewRepo[entities.User](db)
	byEmail, err := users.FindBy(ctx, "email", u.Email)
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)
}

func TestRepoCreateInBatchesAndTransaction(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := store.NewRepo[entities.ModelMetric](db)

	day := entities.Day(2024, time.February, 2)
	batch := []entities.ModelMetric{
		{ModelVersion: "v2", MetricType: entities.MetricAccuracy, MetricValue: entities.Dec("0.9"), EvaluationDate: day},
		{ModelVersion: "v2", MetricType: entities.MetricF1Score, MetricValue: entities.Dec("0.85"), EvaluationDate: day},
	}
	require.NoError(t, repo.CreateInBatches(ctx, batch, 10))
	assert.NotEqual(t, uuid.Nil, batch[0].ID)
	assert.NotEqual(t, batch[0].ID, batch[1].ID)

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := repo.WithTx(tx).Create(ctx, &entities.ModelMetric{ModelVersion: "v3", MetricType: entities.MetricRecall, MetricValue: entities.Dec("0.5"), EvaluationDate: day}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := repo.Count(ctx, store.Eq("model_version", "v3"))
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = repo.Count(ctx, store.Eq("model_version", "v2"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRepoListScopes(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testkit.Schedule(t, db, f.ID, u.ID, base.AddDate(0, 0, i))
	}

	repo := store.NewRepo[entities.IrrigationSchedule](db)
	rows, err := repo.List(ctx,
		store.Between("recommended_date", base.AddDate(0, 0, 1), base.AddDate(0, 0, 3)),
		func(db *gorm.DB) *gorm.DB { return db.Order("recommended_date") },
		store.Limit(2),
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].RecommendedDate.Equal(base.AddDate(0, 0, 1)))
	assert.True(t, rows[1].RecommendedDate.Equal(base.AddDate(0, 0, 2)))
}

func TestUTCArguments(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	at := time.Date(2024, 9, 10, 10, 0, 0, 0, ict)

	got := store.UTC(at).(time.Time)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(at))

	ptr := store.UTC(&at).(*time.Time)
	assert.Equal(t, time.UTC, ptr.Location())
	assert.Equal(t, ict, at.Location())

	// A date keeps its calendar day rather than shifting with the offset.
	d := store.UTC(datatypes.Date(time.Date(2024, 9, 10, 0, 0, 0, 0, ict))).(datatypes.Date)
	assert.Equal(t, entities.Day(2024, time.September, 10), d)

	assert.Equal(t, "x", store.UTC("x"))
	assert.Nil(t, store.UTC((*time.Time)(nil)).(*time.Time))
}
