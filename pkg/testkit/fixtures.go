package testkit

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agri/entities"
)

var seq atomic.Int64

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func User(t testing.TB, db *gorm.DB) *entities.User {
	t.Helper()
	n := seq.Add(1)
	u := &entities.User{
		Email:        fmt.Sprintf("farmer%d@example.com", n),
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplaceholderplacehold",
		FullName:     fmt.Sprintf("Farmer %d", n),
	}
	mustCreate(t, db, u)
	return u
}

func Field(t testing.TB, db *gorm.DB, userID uuid.UUID) *entities.Field {
	t.Helper()
	f := &entities.Field{
		UserID:         userID,
		Name:           "North plot",
		Latitude:       entities.Dec("14.07345678"),
		Longitude:      entities.Dec("100.61234567"),
		AreaHectares:   entities.Dec("3.25"),
		SoilType:       "loam",
		CropType:       "rice",
		SowingDate:     entities.Day(2024, time.June, 1),
		IrrigationType: "drip",
	}
	mustCreate(t, db, f)
	return f
}

func Inference(t testing.TB, db *gorm.DB, fieldID, userID uuid.UUID) *entities.ImageInference {
	t.Helper()
	i := &entities.ImageInference{
		FieldID:       fieldID,
		UserID:        userID,
		ImageURL:      "https://cdn.example.com/leaf.jpg",
		ImageS3Key:    "uploads/leaf.jpg",
		InferenceType: entities.InferenceServer,
		ModelVersion:  "v1.0.0",
		Predictions: []entities.Prediction{
			{Disease: "brown_spot", Confidence: entities.Dec("87.50"), Severity: entities.SeverityMedium},
			{Disease: "leaf_blight", Confidence: entities.Dec("10.25")},
		},
	}
	i.RankPredictions()
	mustCreate(t, db, i)
	return i
}

func Recommendation(t testing.TB, db *gorm.DB, inferenceID uuid.UUID, priority int) *entities.Recommendation {
	t.Helper()
	r := &entities.Recommendation{
		InferenceID:   inferenceID,
		TreatmentType: entities.TreatmentOrganic,
		Title:         fmt.Sprintf("Treatment p%d", priority),
		Description:   "Apply neem oil in the early morning.",
		Products:      []entities.Product{{Name: "Neem oil", Dosage: "5 ml/L"}},
		Priority:      priority,
	}
	mustCreate(t, db, r)
	return r
}

func Chat(t testing.TB, db *gorm.DB, userID uuid.UUID, fieldID *uuid.UUID) *entities.ChatHistory {
	t.Helper()
	h := &entities.ChatHistory{
		UserID:   userID,
		FieldID:  fieldID,
		Query:    "When should I fertilise?",
		Response: "Apply nitrogen at tillering.",
		Sources:  []entities.SourceRef{{Title: "Rice guide"}},
	}
	mustCreate(t, db, h)
	return h
}

func Alert(t testing.TB, db *gorm.DB, fieldID, userID uuid.UUID, start time.Time) *entities.WeatherAlert {
	t.Helper()
	a := &entities.WeatherAlert{
		FieldID:            fieldID,
		UserID:             userID,
		AlertType:          entities.AlertHeavyRain,
		Severity:           entities.SeverityHigh,
		Title:              "Heavy rain expected",
		Description:        "80 mm in 24h",
		RecommendedActions: []string{"Clear drainage channels"},
		StartTime:          start,
	}
	mustCreate(t, db, a)
	return a
}

func Schedule(t testing.TB, db *gorm.DB, fieldID, userID uuid.UUID, day time.Time) *entities.IrrigationSchedule {
	t.Helper()
	s := &entities.IrrigationSchedule{
		FieldID:           fieldID,
		UserID:            userID,
		RecommendedDate:   day,
		WaterVolumeLiters: entities.Dec("1200.00"),
		SoilMoistureLevel: entities.NullDec("32.50"),
		Reasoning:         "Low soil moisture and no rain forecast.",
	}
	mustCreate(t, db, s)
	return s
}

func DeviceToken(t testing.TB, db *gorm.DB, userID uuid.UUID, token string) *entities.DeviceToken {
	t.Helper()
	d := &entities.DeviceToken{UserID: userID, Token: token, DeviceType: entities.DeviceAndroid}
	mustCreate(t, db, d)
	return d
}

func Log(t testing.TB, db *gorm.DB, userID *uuid.UUID, action string, status int) *entities.SystemLog {
	t.Helper()
	l := &entities.SystemLog{UserID: userID, Action: action, RequestMethod: "GET", RequestPath: "/health", StatusCode: &status}
	mustCreate(t, db, l)
	return l
}
