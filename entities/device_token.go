package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DeviceToken struct {
	Identity
	UserID     uuid.UUID                       `json:"user_id" gorm:"type:uuid;not null;index"`
	Token      string                          `json:"token" gorm:"type:varchar(500);not null;uniqueIndex"`
	DeviceType DeviceType                      `json:"device_type" gorm:"type:varchar(20);not null;check:chk_device_tokens_device_type,device_type IN ('ios','android','web')"`
	DeviceInfo *datatypes.JSONType[DeviceInfo] `json:"device_info,omitempty"`
	IsActive   bool                            `json:"is_active" gorm:"not null;default:true;index"`
	LastUsedAt time.Time                       `json:"last_used_at" gorm:"not null"`
	CreatedAt  time.Time                       `json:"created_at" gorm:"not null"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (DeviceToken) TableName() string { return "device_tokens" }

func (t *DeviceToken) ApplyDefaults(now time.Time) {
	if t.LastUsedAt.IsZero() {
		t.LastUsedAt = now
	}
	stampVersion(t.DeviceInfo, func(d *DeviceInfo) *int { return &d.SchemaVersion })
}

func (t *DeviceToken) Validate() error {
	c := newChecks("device_token")
	c.required("user_id", t.UserID == uuid.Nil)
	c.text("token", t.Token, 500, true)
	c.oneOf("device_type", t.DeviceType)
	c.required("last_used_at", t.LastUsedAt.IsZero())
	return c.err()
}

func (t DeviceToken) String() string {
	return fmt.Sprintf("<DeviceToken id=%s device_type=%s is_active=%t>", t.ID, t.DeviceType, t.IsActive)
}
