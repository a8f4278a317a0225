package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WeatherAlert struct {
	Identity
	FieldID            uuid.UUID                   `json:"field_id" gorm:"type:uuid;not null;index"`
	UserID             uuid.UUID                   `json:"user_id" gorm:"type:uuid;not null;index"`
	AlertType          AlertType                   `json:"alert_type" gorm:"type:varchar(20);not null;index;check:chk_weather_alerts_alert_type,alert_type IN ('heavy_rain','frost','heat_wave','hail','storm','drought','flood')"`
	Severity           Severity                    `json:"severity" gorm:"type:varchar(20);not null;index;check:chk_weather_alerts_severity,severity IN ('low','medium','high','critical')"`
	Title              string                      `json:"title" gorm:"type:varchar(255);not null"`
	Description        string                      `json:"description" gorm:"type:text;not null"`
	RecommendedActions datatypes.JSONSlice[string] `json:"recommended_actions,omitempty"`
	StartTime          time.Time                   `json:"start_time" gorm:"not null;index"`
	EndTime            *time.Time                  `json:"end_time,omitempty"`
	IsRead             bool                        `json:"is_read" gorm:"not null;default:false;index"`
	IsNotified         bool                        `json:"is_notified" gorm:"not null;default:false"`
	CreatedAt          time.Time                   `json:"created_at" gorm:"not null"`

	Field *Field `json:"field,omitempty" gorm:"foreignKey:FieldID"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (WeatherAlert) TableName() string { return "weather_alerts" }

// ActiveAt reports whether the alert window covers t. An open-ended alert
// stays active from its start.
func (a WeatherAlert) ActiveAt(t time.Time) bool {
	if t.Before(a.StartTime) {
		return false
	}
	return a.EndTime == nil || !t.After(*a.EndTime)
}

func (a *WeatherAlert) Validate() error {
	c := newChecks("weather_alert")
	c.required("field_id", a.FieldID == uuid.Nil)
	c.required("user_id", a.UserID == uuid.Nil)
	c.oneOf("alert_type", a.AlertType)
	c.oneOf("severity", a.Severity)
	c.text("title", a.Title, 255, true)
	c.text("description", a.Description, 0, true)
	c.required("start_time", a.StartTime.IsZero())
	if a.EndTime != nil && !a.StartTime.IsZero() && a.EndTime.Before(a.StartTime) {
		c.fail("end_time", a.EndTime.Format(time.RFC3339), ErrOutOfRange)
	}
	return c.err()
}

func (a WeatherAlert) String() string {
	return fmt.Sprintf("<WeatherAlert id=%s alert_type=%s severity=%s>", a.ID, a.AlertType, a.Severity)
}
