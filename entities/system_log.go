package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is an audit record. The user reference is cleared, not the log,
// when the user is deleted.
type SystemLog struct {
	Identity
	UserID        *uuid.UUID                       `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Action        string                           `json:"action" gorm:"type:varchar(100);not null;index"`
	ResourceType  string                           `json:"resource_type,omitempty" gorm:"type:varchar(50);index"`
	ResourceID    *uuid.UUID                       `json:"resource_id,omitempty" gorm:"type:uuid"`
	RequestMethod string                           `json:"request_method,omitempty" gorm:"type:varchar(10)"`
	RequestPath   string                           `json:"request_path,omitempty" gorm:"type:varchar(500)"`
	StatusCode    *int                             `json:"status_code,omitempty" gorm:"index;check:chk_system_logs_status_code_range,status_code IS NULL OR status_code BETWEEN 100 AND 599"`
	DurationMS    *int                             `json:"duration_ms,omitempty" gorm:"column:duration_ms;check:chk_system_logs_duration_ms_range,duration_ms IS NULL OR duration_ms >= 0"`
	IPAddress     string                           `json:"ip_address,omitempty" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent     string                           `json:"user_agent,omitempty" gorm:"type:text"`
	ErrorMessage  string                           `json:"error_message,omitempty" gorm:"type:text"`
	Metadata      *datatypes.JSONType[LogMetadata] `json:"metadata,omitempty"`
	CreatedAt     time.Time                        `json:"created_at" gorm:"not null;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (SystemLog) TableName() string { return "system_logs" }

func (l *SystemLog) ApplyDefaults(time.Time) {
	stampVersion(l.Metadata, func(m *LogMetadata) *int { return &m.SchemaVersion })
}

func (l *SystemLog) Validate() error {
	c := newChecks("system_log")
	if l.UserID != nil && *l.UserID == uuid.Nil {
		c.fail("user_id", nil, ErrRequired)
	}
	c.text("action", l.Action, 100, true)
	c.text("resource_type", l.ResourceType, 50, false)
	c.text("request_method", l.RequestMethod, 10, false)
	c.text("request_path", l.RequestPath, 500, false)
	c.text("ip_address", l.IPAddress, 45, false)
	if l.StatusCode != nil {
		c.intBetween("status_code", *l.StatusCode, 100, 599)
	}
	if l.DurationMS != nil && *l.DurationMS < 0 {
		c.fail("duration_ms", *l.DurationMS, ErrOutOfRange)
	}
	return c.err()
}

func (l SystemLog) String() string {
	status := "-"
	if l.StatusCode != nil {
		status = fmt.Sprint(*l.StatusCode)
	}
	return fmt.Sprintf("<SystemLog id=%s action=%s status_code=%s>", l.ID, l.Action, status)
}
