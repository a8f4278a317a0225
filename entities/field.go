package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Field struct {
	Identity
	UserID              uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Name                string          `json:"name" gorm:"type:varchar(255);not null"`
	Latitude            decimal.Decimal `json:"latitude" gorm:"type:numeric(10,8);not null;check:chk_fields_latitude_range,latitude BETWEEN -90 AND 90"`
	Longitude           decimal.Decimal `json:"longitude" gorm:"type:numeric(11,8);not null;check:chk_fields_longitude_range,longitude BETWEEN -180 AND 180"`
	AreaHectares        decimal.Decimal `json:"area_hectares" gorm:"type:numeric(10,2);not null;check:chk_fields_area_hectares_range,area_hectares > 0"`
	SoilType            string          `json:"soil_type,omitempty" gorm:"type:varchar(50)"` // clay|loam|sandy|silt
	CropType            string          `json:"crop_type" gorm:"type:varchar(100);not null;index"`
	SowingDate          datatypes.Date  `json:"sowing_date" gorm:"not null;index"`
	ExpectedHarvestDate *datatypes.Date `json:"expected_harvest_date,omitempty"`
	IrrigationType      string          `json:"irrigation_type,omitempty" gorm:"type:varchar(50)"` // drip|sprinkler|flood|rainfed
	Timestamps

	User                *User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CropRecords         []CropRecord         `json:"crop_records,omitempty" gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
	ImageInferences     []ImageInference     `json:"image_inferences,omitempty" gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
	WeatherAlerts       []WeatherAlert       `json:"weather_alerts,omitempty" gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
	IrrigationSchedules []IrrigationSchedule `json:"irrigation_schedules,omitempty" gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
	ChatHistory         []ChatHistory        `json:"-" gorm:"foreignKey:FieldID;constraint:OnDelete:SET NULL"`
}

func (Field) TableName() string { return "fields" }

func (f *Field) Validate() error {
	c := newChecks("field")
	c.required("user_id", f.UserID == uuid.Nil)
	c.text("name", f.Name, 255, true)
	c.numeric("latitude", &f.Latitude, NumericLatitude, &minLat, &maxLat)
	c.numeric("longitude", &f.Longitude, NumericLongitude, &minLong, &maxLong)
	c.required("area_hectares", f.AreaHectares.IsZero())
	c.numeric("area_hectares", &f.AreaHectares, NumericQuantity, &zero, nil)
	c.text("soil_type", f.SoilType, 50, false)
	c.text("crop_type", f.CropType, 100, true)
	c.required("sowing_date", dateIsZero(f.SowingDate))
	if h := f.ExpectedHarvestDate; h != nil && !dateIsZero(f.SowingDate) && time.Time(*h).Before(time.Time(f.SowingDate)) {
		c.fail("expected_harvest_date", formatDate(*h), ErrOutOfRange)
	}
	c.text("irrigation_type", f.IrrigationType, 50, false)
	return c.err()
}

func (f Field) String() string {
	return fmt.Sprintf("<Field id=%s name=%s crop_type=%s>", f.ID, f.Name, f.CropType)
}
