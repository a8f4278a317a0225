package repositoryImp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri/entities"
	"agri/pkg/store"
	"agri/pkg/testkit"
)

func TestInferenceRepoQueries(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)

	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)
	g := testkit.Field(t, db, u.ID)
	first := testkit.Inference(t, db, f.ID, u.ID)
	second := testkit.Inference(t, db, g.ID, u.ID)

	byField, err := repo.ListByField(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, byField, 1)
	assert.Equal(t, first.ID, byField[0].ID)

	byUser, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	spot, err := repo.ListByTopDisease(ctx, "brown_spot")
	require.NoError(t, err)
	assert.Len(t, spot, 2)
	assert.True(t, spot[0].TopConfidence.Decimal.Equal(entities.Dec("87.50")))

	onDevice, err := repo.ListByType(ctx, entities.InferenceOnDevice)
	require.NoError(t, err)
	assert.Empty(t, onDevice)

	require.NoError(t, repo.RecordFeedback(ctx, second.ID, false))
	got, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFeedbackProvided)
	require.NotNil(t, got.FeedbackCorrect)
	assert.False(t, *got.FeedbackCorrect)
}

func TestCreateWithRecommendations(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)
	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)

	inf := &entities.ImageInference{
		FieldID:       f.ID,
		UserID:        u.ID,
		ImageURL:      "https://cdn.example.com/a.jpg",
		ImageS3Key:    "uploads/a.jpg",
		InferenceType: entities.InferenceOnDevice,
		Predictions:   []entities.Prediction{{Disease: "blast", Confidence: entities.Dec("91.00")}},
	}
	inf.RankPredictions()
	recs := []entities.Recommendation{
		{TreatmentType: entities.TreatmentCultural, Title: "Drain field", Description: "Drain for 3 days", Priority: entities.PriorityMedium},
		{TreatmentType: entities.TreatmentChemical, Title: "Tricyclazole", Description: "Spray at 0.6 g/L"},
	}
	require.NoError(t, repo.CreateWithRecommendations(ctx, inf, recs))
	require.Len(t, inf.Recommendations, 2)
	assert.Equal(t, inf.ID, inf.Recommendations[1].InferenceID)

	got, err := repo.FindByID(ctx, inf.ID, "Recommendations")
	require.NoError(t, err)
	assert.Len(t, got.Recommendations, 2)
}

func TestCreateWithRecommendationsRollsBack(t *testing.T) {
	db := testkit.OpenTestDB(t)
	ctx := context.Background()
	repo := New(db)
	u := testkit.User(t, db)
	f := testkit.Field(t, db, u.ID)

	inf := &entities.ImageInference{
		FieldID:       f.ID,
		UserID:        u.ID,
		ImageURL:      "https://cdn.example.com/b.jpg",
		ImageS3Key:    "uploads/b.jpg",
		InferenceType: entities.InferenceServer,
		Predictions:   []entities.Prediction{{Disease: "blast", Confidence: entities.Dec("55")}},
	}
	err := repo.CreateWithRecommendations(ctx, inf, []entities.Recommendation{
		{TreatmentType: "homeopathic", Title: "Nope", Description: "x"},
	})
	assert.ErrorIs(t, err, entities.ErrInvalidEnum)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.FindByID(ctx, inf.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
