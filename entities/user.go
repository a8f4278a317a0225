package entities

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	Identity
	Email              string   `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash       string   `json:"-" gorm:"type:varchar(255);not null"`
	Role               UserRole `json:"role" gorm:"type:varchar(20);not null;default:farmer;index;check:chk_users_role,role IN ('farmer','admin')"`
	FullName           string   `json:"full_name,omitempty" gorm:"type:varchar(255)"`
	PhoneNumber        string   `json:"phone_number,omitempty" gorm:"type:varchar(20)"`
	LanguagePreference string   `json:"language_preference" gorm:"type:varchar(10);default:en"`
	IsActive           bool     `json:"is_active" gorm:"not null;default:true"`
	Timestamps

	Fields              []Field              `json:"fields,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ImageInferences     []ImageInference     `json:"image_inferences,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ChatHistory         []ChatHistory        `json:"chat_history,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	WeatherAlerts       []WeatherAlert       `json:"weather_alerts,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IrrigationSchedules []IrrigationSchedule `json:"irrigation_schedules,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DeviceTokens        []DeviceToken        `json:"device_tokens,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SystemLogs          []SystemLog          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (User) TableName() string { return "users" }

// NormalizeEmail is applied before every write and lookup so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (u *User) Normalize() { u.Email = NormalizeEmail(u.Email) }

func (*User) NormalizeColumn(column string, v any) any {
	if s, ok := v.(string); ok && column == "email" {
		return NormalizeEmail(s)
	}
	return v
}

func (u *User) ApplyDefaults(time.Time) {
	if u.Role == "" {
		u.Role = RoleFarmer
	}
	if u.LanguagePreference == "" {
		u.LanguagePreference = "en"
	}
}

func (u *User) Validate() error {
	c := newChecks("user")
	c.text("email", u.Email, 255, true)
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		c.fail("email", u.Email, ErrOutOfRange)
	}
	c.text("password_hash", u.PasswordHash, 255, true)
	c.oneOf("role", u.Role)
	c.text("full_name", u.FullName, 255, false)
	c.text("phone_number", u.PhoneNumber, 20, false)
	c.text("language_preference", u.LanguagePreference, 10, false)
	return c.err()
}

func (u User) String() string {
	return fmt.Sprintf("<User id=%s email=%s role=%s>", u.ID, u.Email, u.Role)
}
