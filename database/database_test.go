package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agri/database"
	"agri/entities"
	"agri/pkg/store"
	"agri/pkg/testkit"
)

func count[T any](t *testing.T, db *gorm.DB, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(new(T)).Where(where, args...).Count(&n).Error)
	return n
}

func TestMigrateEnforcesRelationshipRules(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.VerifyForeignKeys(ctx, db))
	require.NoError(t, database.VerifySchema(ctx, db))
	// Running it twice must be a no-op.
	require.NoError(t, database.Migrate(ctx, db))

	var tables []string
	require.NoError(t, db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`).Scan(&tables).Error)
	assert.Equal(t, []string{
		"chat_history", "crop_records", "device_tokens", "fields", "image_inferences",
		"irrigation_schedules", "model_metrics", "recommendations", "system_logs",
		"users", "weather_alerts",
	}, tables)
}

func TestDeleteUserCascadesLineage(t *testing.T) {
	db := testkit.OpenTestDB(t)
	now := time.Now().UTC()

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	inf := testkit.Inference(t, db, f.ID, u.ID)
	testkit.Recommendation(t, db, inf.ID, entities.PriorityHigh)
	testkit.Recommendation(t, db, inf.ID, entities.PriorityLow)
	testkit.Alert(t, db, f.ID, u.ID, now)
	testkit.Schedule(t, db, f.ID, u.ID, now)
	testkit.Chat(t, db, u.ID, &f.ID)
	testkit.DeviceToken(t, db, u.ID, "tok-1")
	require.NoError(t, db.Create(&entities.CropRecord{FieldID: f.ID, CropType: "rice", SowingDate: entities.Day(2023, time.June, 1)}).Error)
	log := testkit.Log(t, db, &u.ID, "user.login", 200)

	require.NoError(t, db.Delete(&entities.User{}, "id = ?", u.ID).Error)

	assert.Zero(t, count[entities.Field](t, db, "user_id = ?", u.ID))
	assert.Zero(t, count[entities.CropRecord](t, db, "field_id = ?", f.ID))
	assert.Zero(t, count[entities.ImageInference](t, db, "id = ?", inf.ID))
	assert.Zero(t, count[entities.Recommendation](t, db, "inference_id = ?", inf.ID))
	assert.Zero(t, count[entities.WeatherAlert](t, db, "user_id = ?", u.ID))
	assert.Zero(t, count[entities.IrrigationSchedule](t, db, "user_id = ?", u.ID))
	assert.Zero(t, count[entities.ChatHistory](t, db, "user_id = ?", u.ID))
	assert.Zero(t, count[entities.DeviceToken](t, db, "user_id = ?", u.ID))

	var kept entities.SystemLog
	require.NoError(t, db.First(&kept, "id = ?", log.ID).Error)
	assert.Nil(t, kept.UserID)
	assert.Equal(t, "user.login", kept.Action)
}

func TestDeleteFieldKeepsChatTurns(t *testing.T) {
	db := testkit.OpenTestDB(t)

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	h := testkit.Chat(t, db, u.ID, &f.ID)
	inf := testkit.Inference(t, db, f.ID, u.ID)

	require.NoError(t, db.Delete(&entities.Field{}, "id = ?", f.ID).Error)

	var got entities.ChatHistory
	require.NoError(t, db.First(&got, "id = ?", h.ID).Error)
	assert.Nil(t, got.FieldID)
	assert.Equal(t, u.ID, got.UserID)
	assert.Zero(t, count[entities.ImageInference](t, db, "id = ?", inf.ID))
	assert.EqualValues(t, 1, count[entities.User](t, db, "id = ?", u.ID))
}

func TestUniqueEmailAndToken(t *testing.T) {
	db := testkit.OpenTestDB(t)
	u := testkit.User(t, db)

	dup := &entities.User{Email: "  " + u.Email + " ", PasswordHash: "x"}
	err := store.Classify(db.Create(dup).Error)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	testkit.DeviceToken(t, db, u.ID, "same-token")
	err = store.Classify(db.Create(&entities.DeviceToken{UserID: u.ID, Token: "same-token", DeviceType: entities.DeviceIOS}).Error)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestForeignKeyMustExist(t *testing.T) {
	db := testkit.OpenTestDB(t)
	u := testkit.User(t, db)

	f := &entities.Field{
		UserID:       uuid.New(),
		Name:         "Orphan",
		Latitude:     entities.Dec("1"),
		Longitude:    entities.Dec("1"),
		AreaHectares: entities.Dec("1"),
		CropType:     "maize",
		SowingDate:   entities.Day(2024, time.January, 1),
	}
	assert.ErrorIs(t, store.Classify(db.Create(f).Error), store.ErrForeignKey)

	missing := uuid.New()
	h := &entities.ChatHistory{UserID: u.ID, FieldID: &missing, Query: "q", Response: "r"}
	assert.ErrorIs(t, store.Classify(db.Create(h).Error), store.ErrForeignKey)
}

func TestCheckConstraintsBackValidation(t *testing.T) {
	db := testkit.OpenTestDB(t)
	now := time.Now().UTC()

	err := db.Exec(`INSERT INTO users (id, email, password_hash, role, language_preference, is_active, created_at, updated_at)
		VALUES (?, 'root@example.com', 'x', 'root', 'en', true, ?, ?)`, uuid.New(), now, now).Error
	err = store.Classify(err)
	assert.ErrorIs(t, err, store.ErrCheckViolation)
	assert.ErrorIs(t, err, entities.ErrInvalidEnum)

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	inf := testkit.Inference(t, db, f.ID, u.ID)
	err = db.Exec(`INSERT INTO recommendations (id, inference_id, treatment_type, title, description, priority, created_at)
		VALUES (?, ?, 'organic', 't', 'd', 7, ?)`, uuid.New(), inf.ID, now).Error
	err = store.Classify(err)
	assert.ErrorIs(t, err, store.ErrCheckViolation)
	assert.ErrorIs(t, err, entities.ErrOutOfRange)
	assert.NotErrorIs(t, err, entities.ErrInvalidEnum)

	err = db.Exec(`INSERT INTO device_tokens (id, user_id, token, device_type, is_active, last_used_at, created_at)
		VALUES (?, ?, 't', NULL, true, ?, ?)`, uuid.New(), u.ID, now, now).Error
	assert.ErrorIs(t, store.Classify(err), entities.ErrRequired)
}

func TestRangeChecksRejectPatchedValues(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	fields := store.NewRepo[entities.Field](db)
	cases := []struct {
		name string
		cols map[string]any
	}{
		{"latitude", map[string]any{"latitude": entities.Dec("95")}},
		{"longitude", map[string]any{"longitude": entities.Dec("-180.5")}},
		{"area", map[string]any{"area_hectares": entities.Dec("0")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fields.Patch(ctx, f.ID, tc.cols)
			assert.ErrorIs(t, err, store.ErrCheckViolation)
			assert.ErrorIs(t, err, entities.ErrOutOfRange)
		})
	}
	require.NoError(t, fields.Patch(ctx, f.ID, map[string]any{"latitude": entities.Dec("-90")}))

	h := &entities.ChatHistory{UserID: u.ID, Query: "q", Response: "r"}
	require.NoError(t, db.Create(h).Error)
	err := store.NewRepo[entities.ChatHistory](db).Patch(ctx, h.ID, map[string]any{"feedback_rating": 9})
	assert.ErrorIs(t, err, entities.ErrOutOfRange)

	l := &entities.SystemLog{Action: "GET /health"}
	require.NoError(t, db.Create(l).Error)
	err = store.NewRepo[entities.SystemLog](db).Patch(ctx, l.ID, map[string]any{"status_code": 42})
	assert.ErrorIs(t, err, entities.ErrOutOfRange)
}

func TestWriteCallbacksStoreUTC(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	ict := time.FixedZone("ICT", 7*3600)

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	s := testkit.Schedule(t, db, f.ID, u.ID, time.Date(2024, 8, 2, 5, 0, 0, 0, ict))
	assert.Equal(t, time.UTC, s.RecommendedDate.Location())
	assert.Equal(t, 2024, s.RecommendedDate.Year())
	assert.Equal(t, 22, s.RecommendedDate.Hour())

	repo := store.NewRepo[entities.IrrigationSchedule](db)
	done := time.Date(2024, 8, 2, 6, 30, 0, 0, ict)
	require.NoError(t, repo.Patch(ctx, s.ID, map[string]any{"is_completed": true, "completed_at": done}))

	day := store.Between("completed_at", time.Date(2024, 8, 2, 0, 0, 0, 0, ict), time.Date(2024, 8, 2, 0, 0, 0, 0, ict).AddDate(0, 0, 1))
	n, err := repo.Count(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(done))
}

func TestCreateRejectsInvalidRows(t *testing.T) {
	db := testkit.OpenTestDB(t)
	u := testkit.User(t, db)

	err := db.Create(&entities.WeatherAlert{UserID: u.ID, AlertType: "tornado", Severity: entities.SeverityLow, Title: "t", Description: "d", StartTime: time.Now()}).Error
	assert.ErrorIs(t, err, entities.ErrInvalidEnum)
	assert.ErrorIs(t, err, entities.ErrRequired) // field_id
	assert.Zero(t, count[entities.WeatherAlert](t, db, "1 = 1"))
}

func TestTimestampsAreOwnedByStorage(t *testing.T) {
	db := testkit.OpenTestDB(t)
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	advance := testkit.FreezeClock(t, db, t0)

	u := &entities.User{Email: "clock@example.com", PasswordHash: "x"}
	u.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(u).Error)
	assert.True(t, u.CreatedAt.Equal(t0))
	assert.True(t, u.UpdatedAt.Equal(t0))
	assert.NotEqual(t, uuid.Nil, u.ID)

	advance(time.Hour)
	u.FullName = "Renamed"
	u.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.NewRepo[entities.User](db).Update(context.Background(), u))

	var got entities.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, "Renamed", got.FullName)
	assert.True(t, got.CreatedAt.Equal(t0), "created_at rewritten: %s", got.CreatedAt)
	assert.True(t, got.UpdatedAt.Equal(t0.Add(time.Hour)), "updated_at: %s", got.UpdatedAt)
}

func TestDecimalsRoundTripExactly(t *testing.T) {
	db := testkit.OpenTestDB(t)
	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)

	var got entities.Field
	require.NoError(t, db.First(&got, "id = ?", f.ID).Error)
	assert.True(t, got.Latitude.Equal(entities.Dec("14.07345678")), got.Latitude.String())
	assert.True(t, got.Longitude.Equal(entities.Dec("100.61234567")), got.Longitude.String())
	assert.True(t, got.AreaHectares.Equal(entities.Dec("3.25")))

	s := testkit.Schedule(t, db, f.ID, u.ID, time.Now())
	var sched entities.IrrigationSchedule
	require.NoError(t, db.First(&sched, "id = ?", s.ID).Error)
	assert.True(t, sched.WaterVolumeLiters.Equal(entities.Dec("1200")))
	assert.True(t, sched.SoilMoistureLevel.Valid)
	assert.False(t, sched.ActualWaterUsedLiters.Valid)
}

func TestJSONColumnsRoundTrip(t *testing.T) {
	db := testkit.OpenTestDB(t)
	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	inf := testkit.Inference(t, db, f.ID, u.ID)

	var got entities.ImageInference
	require.NoError(t, db.First(&got, "id = ?", inf.ID).Error)
	require.Len(t, got.Predictions, 2)
	assert.Equal(t, "brown_spot", got.Predictions[0].Disease)
	assert.True(t, got.Predictions[0].Confidence.Equal(entities.Dec("87.5")))
	assert.Equal(t, entities.SeverityMedium, got.Predictions[0].Severity)

	d := &entities.DeviceToken{
		UserID: u.ID, Token: "tok-json", DeviceType: entities.DeviceIOS,
		DeviceInfo: entities.JSON(entities.DeviceInfo{Model: "iPhone 15", OSVersion: "17.4"}),
	}
	require.NoError(t, db.Create(d).Error)
	var tok entities.DeviceToken
	require.NoError(t, db.First(&tok, "id = ?", d.ID).Error)
	require.NotNil(t, tok.DeviceInfo)
	assert.Equal(t, "iPhone 15", tok.DeviceInfo.Data().Model)
	assert.Equal(t, entities.PayloadSchemaVersion, tok.DeviceInfo.Data().SchemaVersion)
}
