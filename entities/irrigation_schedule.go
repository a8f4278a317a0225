package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type IrrigationSchedule struct {
	Identity
	FieldID               uuid.UUID                            `json:"field_id" gorm:"type:uuid;not null;index"`
	UserID                uuid.UUID                            `json:"user_id" gorm:"type:uuid;not null;index"`
	RecommendedDate       time.Time                            `json:"recommended_date" gorm:"not null;index"`
	WaterVolumeLiters     decimal.Decimal                      `json:"water_volume_liters" gorm:"type:numeric(10,2);not null;check:chk_irrigation_schedules_water_volume_liters_range,water_volume_liters >= 0"`
	SoilMoistureLevel     decimal.NullDecimal                  `json:"soil_moisture_level" gorm:"type:numeric(5,2);check:chk_irrigation_schedules_soil_moisture_level_range,soil_moisture_level IS NULL OR soil_moisture_level BETWEEN 0 AND 100"` // percent
	WeatherForecast       *datatypes.JSONType[WeatherSnapshot] `json:"weather_forecast,omitempty"`
	Reasoning             string                               `json:"reasoning,omitempty" gorm:"type:text"`
	IsCompleted           bool                                 `json:"is_completed" gorm:"not null;default:false;index"`
	CompletedAt           *time.Time                           `json:"completed_at,omitempty"`
	ActualWaterUsedLiters decimal.NullDecimal                  `json:"actual_water_used_liters" gorm:"type:numeric(10,2);check:chk_irrigation_schedules_actual_water_used_liters_range,actual_water_used_liters IS NULL OR actual_water_used_liters >= 0"`
	CreatedAt             time.Time                            `json:"created_at" gorm:"not null"`

	Field *Field `json:"field,omitempty" gorm:"foreignKey:FieldID"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (IrrigationSchedule) TableName() string { return "irrigation_schedules" }

func (s *IrrigationSchedule) ApplyDefaults(time.Time) {
	stampVersion(s.WeatherForecast, func(w *WeatherSnapshot) *int { return &w.SchemaVersion })
}

func (s *IrrigationSchedule) Validate() error {
	c := newChecks("irrigation_schedule")
	c.required("field_id", s.FieldID == uuid.Nil)
	c.required("user_id", s.UserID == uuid.Nil)
	c.required("recommended_date", s.RecommendedDate.IsZero())
	c.numeric("water_volume_liters", &s.WaterVolumeLiters, NumericQuantity, &zero, nil)
	c.nullNumeric("soil_moisture_level", &s.SoilMoistureLevel, NumericPercent, &zero, &hundred)
	c.nullNumeric("actual_water_used_liters", &s.ActualWaterUsedLiters, NumericQuantity, &zero, nil)
	if s.CompletedAt != nil && !s.IsCompleted {
		c.fail("completed_at", s.CompletedAt.Format(time.RFC3339), ErrOutOfRange)
	}
	return c.err()
}

func (s IrrigationSchedule) String() string {
	return fmt.Sprintf("<IrrigationSchedule id=%s recommended_date=%s water_volume=%s>",
		s.ID, s.RecommendedDate.Format("2006-01-02"), s.WaterVolumeLiters)
}
